// Package auth supplies the bearer token the support endpoints require.
package auth

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FileTokenSource reads the persisted admin bearer token from disk. The
// token is cached after the first read; Reload picks up a rotated file.
// An expired JWT is treated as absent so requests fail locally instead
// of bouncing off the backend with a stale token.
type FileTokenSource struct {
	path string

	mu     sync.Mutex
	token  string
	loaded bool
	warned bool
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

// Token returns the bearer token, or "" when the file is missing or the
// token is expired.
func (s *FileTokenSource) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked()
	}
	if s.token == "" {
		return ""
	}
	if expired(s.token) {
		if !s.warned {
			log.Printf("admin-dashboard: support token in %s is expired", s.path)
			s.warned = true
		}
		return ""
	}
	return s.token
}

// Reload drops the cache so the next Token() re-reads the file.
func (s *FileTokenSource) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.warned = false
}

func (s *FileTokenSource) loadLocked() {
	s.loaded = true
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !s.warned {
			log.Printf("admin-dashboard: support token file %s: %v", s.path, err)
			s.warned = true
		}
		s.token = ""
		return
	}
	s.token = strings.TrimSpace(string(data))
}

// expired inspects the exp claim without validating the signature; the
// backend owns verification, the client only avoids sending tokens it
// knows are dead. Opaque (non-JWT) tokens pass through untouched.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
