package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToken(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "support-token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestFileTokenSource(t *testing.T) {
	t.Run("returns the stored token", func(t *testing.T) {
		path := writeToken(t, "  opaque-token\n")
		src := NewFileTokenSource(path)
		assert.Equal(t, "opaque-token", src.Token())
	})

	t.Run("missing file yields empty", func(t *testing.T) {
		src := NewFileTokenSource(filepath.Join(t.TempDir(), "nope"))
		assert.Empty(t, src.Token())
	})

	t.Run("valid JWT passes through", func(t *testing.T) {
		tok := signedToken(t, time.Now().Add(time.Hour))
		src := NewFileTokenSource(writeToken(t, tok))
		assert.Equal(t, tok, src.Token())
	})

	t.Run("expired JWT treated as absent", func(t *testing.T) {
		src := NewFileTokenSource(writeToken(t, signedToken(t, time.Now().Add(-time.Hour))))
		assert.Empty(t, src.Token())
	})

	t.Run("reload picks up a rotated token", func(t *testing.T) {
		path := writeToken(t, "first")
		src := NewFileTokenSource(path)
		require.Equal(t, "first", src.Token())

		require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
		assert.Equal(t, "first", src.Token(), "cached until reload")

		src.Reload()
		assert.Equal(t, "second", src.Token())
	})
}
