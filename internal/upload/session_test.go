package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-dashboard/internal/gateway"
)

func sampleRules() []Rule {
	return []Rule{
		{Field: "image", Check: IsImage},
		{Field: "demoFile", Check: IsMP3},
		{Field: "mainContent", Check: IsZip},
	}
}

func goodFiles() map[string]File {
	return map[string]File{
		"image":       {Name: "cover.png", MIME: "image/png", Content: []byte("png")},
		"demoFile":    {Name: "demo.mp3", MIME: "audio/mpeg", Content: []byte("mp3")},
		"mainContent": {Name: "pack.zip", MIME: "application/zip", Content: []byte("zip")},
	}
}

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]File)
		wantField string
	}{
		{
			name:      "wrong demo MIME",
			mutate:    func(f map[string]File) { f["demoFile"] = File{Name: "demo.wav", MIME: "audio/wav"} },
			wantField: "demoFile",
		},
		{
			name:      "content not a zip",
			mutate:    func(f map[string]File) { f["mainContent"] = File{Name: "pack.rar", MIME: "application/zip"} },
			wantField: "mainContent",
		},
		{
			name:      "non-image cover",
			mutate:    func(f map[string]File) { f["image"] = File{Name: "cover.txt", MIME: "text/plain"} },
			wantField: "image",
		},
		{
			name:      "missing file",
			mutate:    func(f map[string]File) { delete(f, "demoFile") },
			wantField: "demoFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := goodFiles()
			tt.mutate(files)

			err := NewSession(sampleRules()...).Validate(files)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantField, valErr.Field)
		})
	}

	t.Run("all files valid", func(t *testing.T) {
		assert.NoError(t, NewSession(sampleRules()...).Validate(goodFiles()))
	})

	t.Run("zip extension is case-insensitive", func(t *testing.T) {
		assert.NoError(t, IsZip(File{Name: "PACK.ZIP"}))
	})
}

func TestSession_Submit(t *testing.T) {
	t.Run("progress then one terminal success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(32<<20))
			assert.Equal(t, "Deep Cuts", r.FormValue("title"))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"s1"}`))
		}))
		defer srv.Close()

		sess := NewSession(sampleRules()...)
		go sess.Submit(context.Background(), gateway.New(srv.URL), http.MethodPost, "/api/samples",
			map[string]string{"title": "Deep Cuts"}, goodFiles())

		var events []Event
		for ev := range sess.Events() {
			events = append(events, ev)
		}

		require.NotEmpty(t, events)
		terminal := events[len(events)-1]
		assert.True(t, terminal.Done)
		assert.NoError(t, terminal.Err)
		assert.JSONEq(t, `{"id":"s1"}`, string(terminal.Result))
		assert.Equal(t, 100, terminal.Percent)

		last := -1
		for _, ev := range events[:len(events)-1] {
			assert.False(t, ev.Done, "only the last event may be terminal")
			assert.Greater(t, ev.Percent, last)
			assert.LessOrEqual(t, ev.Percent, 100)
			last = ev.Percent
		}
	})

	t.Run("validation failure makes no request", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()

		files := goodFiles()
		files["demoFile"] = File{Name: "demo.wav", MIME: "audio/wav"}

		sess := NewSession(sampleRules()...)
		go sess.Submit(context.Background(), gateway.New(srv.URL), http.MethodPost, "/api/samples", nil, files)

		var terminal *Event
		for ev := range sess.Events() {
			ev := ev
			terminal = &ev
		}

		require.NotNil(t, terminal)
		assert.True(t, terminal.Done)
		var valErr *ValidationError
		require.ErrorAs(t, terminal.Err, &valErr)
		assert.Equal(t, "demoFile", valErr.Field)
		assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	})

	t.Run("server failure is a terminal failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"price is invalid"}`))
		}))
		defer srv.Close()

		sess := NewSession(sampleRules()...)
		go sess.Submit(context.Background(), gateway.New(srv.URL), http.MethodPost, "/api/samples", nil, goodFiles())

		var terminal *Event
		for ev := range sess.Events() {
			ev := ev
			terminal = &ev
		}

		require.NotNil(t, terminal)
		require.True(t, terminal.Done)
		var httpErr *gateway.HTTPError
		require.ErrorAs(t, terminal.Err, &httpErr)
		assert.Equal(t, "price is invalid", httpErr.Message)
	})

	t.Run("cancellation delivers no terminal event", func(t *testing.T) {
		started := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The server only watches for client disconnects once the request
			// body is consumed; without this drain r.Context() never fires.
			_, _ = io.Copy(io.Discard, r.Body)
			close(started)
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sess := NewSession(sampleRules()...)
		go sess.Submit(ctx, gateway.New(srv.URL), http.MethodPost, "/api/samples", nil, goodFiles())

		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("upload never reached the server")
		}
		cancel()

		for ev := range sess.Events() {
			assert.False(t, ev.Done, "abandoned session must not emit a terminal event")
		}
	})
}
