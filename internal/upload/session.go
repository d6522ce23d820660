// Package upload drives one progress-tracked multipart submission: file
// validation, the transfer itself, and the event stream the dashboard
// watches.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"admin-dashboard/internal/gateway"
)

// File is one file picked for submission.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

// Rule declares one required file slot and its validity check.
type Rule struct {
	Field string
	Check func(f File) error
}

// ValidationError is a pre-network, field-specific rejection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsMP3 accepts only audio/mpeg content.
func IsMP3(f File) error {
	if f.MIME != "audio/mpeg" {
		return fmt.Errorf("must be an MP3 (audio/mpeg), got %q", f.MIME)
	}
	return nil
}

// IsZip accepts files whose name ends in .zip.
func IsZip(f File) error {
	if !strings.HasSuffix(strings.ToLower(f.Name), ".zip") {
		return fmt.Errorf("must be a .zip archive, got %q", f.Name)
	}
	return nil
}

// IsImage accepts any image/* MIME type.
func IsImage(f File) error {
	if !strings.HasPrefix(f.MIME, "image/") {
		return fmt.Errorf("must be an image, got %q", f.MIME)
	}
	return nil
}

// Event is one observation of a session: progress ticks with a
// monotonically non-decreasing Percent, then exactly one terminal event
// with Done set carrying either Result or Err.
type Event struct {
	SessionID string          `json:"sessionId"`
	Percent   int             `json:"percent"`
	Done      bool            `json:"done"`
	Result    json.RawMessage `json:"result,omitempty"`
	Err       error           `json:"-"`
	Error     string          `json:"error,omitempty"`
}

// Session is one submission attempt. Sessions are single-use: create,
// Submit, discard.
type Session struct {
	ID     string
	rules  []Rule
	events chan Event
}

func NewSession(rules ...Rule) *Session {
	return &Session{
		ID:     uuid.NewString(),
		rules:  rules,
		events: make(chan Event, 64),
	}
}

// Events is the session's observation stream. It is closed when the
// session finishes or is abandoned.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Validate checks every required file slot against its rule. It fails
// fast on the first violation and never touches the network.
func (s *Session) Validate(files map[string]File) error {
	for _, r := range s.rules {
		f, ok := files[r.Field]
		if !ok {
			return &ValidationError{Field: r.Field, Message: "file is required"}
		}
		if err := r.Check(f); err != nil {
			return &ValidationError{Field: r.Field, Message: err.Error()}
		}
	}
	return nil
}

// Submit validates and streams the multipart request, emitting progress
// and one terminal event. Cancelling ctx aborts the transfer; an
// abandoned session delivers no terminal event, the channel just closes.
// Submit blocks until done and is meant to run in its own goroutine.
func (s *Session) Submit(ctx context.Context, gw *gateway.Client, method, path string, fields map[string]string, files map[string]File) {
	defer close(s.events)

	if err := s.Validate(files); err != nil {
		s.terminal(ctx, Event{SessionID: s.ID, Done: true, Err: err, Error: err.Error()})
		return
	}

	parts := make([]gateway.FilePart, 0, len(s.rules))
	for _, r := range s.rules {
		f := files[r.Field]
		parts = append(parts, gateway.FilePart{
			Field:   r.Field,
			Name:    f.Name,
			MIME:    f.MIME,
			Content: f.Content,
		})
	}

	lastPct := -1
	raw, err := gw.DoMultipart(ctx, method, path, fields, parts, func(sent, total int64) {
		pct := 0
		if total > 0 {
			pct = int(sent * 100 / total)
		}
		if pct > 100 {
			pct = 100
		}
		if pct <= lastPct {
			return
		}
		lastPct = pct
		s.progress(Event{SessionID: s.ID, Percent: pct})
	})

	if ctx.Err() != nil {
		// Abandoned mid-transfer: no terminal event.
		return
	}
	if err != nil {
		pct := lastPct
		if pct < 0 {
			pct = 0
		}
		s.terminal(ctx, Event{SessionID: s.ID, Percent: pct, Done: true, Err: err, Error: err.Error()})
		return
	}
	s.terminal(ctx, Event{SessionID: s.ID, Percent: 100, Done: true, Result: raw})
}

// progress never blocks; a slow consumer loses intermediate ticks, not
// the terminal event.
func (s *Session) progress(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

func (s *Session) terminal(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
