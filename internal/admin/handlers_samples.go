package admin

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-dashboard/internal/upload"
)

const maxUploadSize = 200 << 20 // sample archives can be large

var sampleFileFields = []string{"image", "demoFile", "mainContent"}

// handleUploadSample accepts the sample form, validates the files before
// any backend traffic, then runs the upload in the background. Progress
// flows to the dashboard over the websocket relay, keyed by session id.
func (s *Server) handleUploadSample(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	fields := map[string]string{
		"title": r.FormValue("title"),
		"genre": r.FormValue("genre"),
		"price": r.FormValue("price"),
	}
	if fields["title"] == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	files := make(map[string]upload.File, len(sampleFileFields))
	for _, field := range sampleFileFields {
		f, hdr, err := r.FormFile(field)
		if err != nil {
			continue // absence is reported field-by-field by Validate
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "cannot read uploaded file "+field)
			return
		}
		files[field] = upload.File{
			Name:    hdr.Filename,
			MIME:    hdr.Header.Get("Content-Type"),
			Content: data,
		}
	}

	sess := s.svcs.Samples.NewUpload()
	if err := sess.Validate(files); err != nil {
		fail(w, err)
		return
	}

	sampleID := r.FormValue("sampleId")
	go s.runUpload(sess, sampleID, fields, files)

	writeJSON(w, http.StatusAccepted, map[string]any{"sessionId": sess.ID})
}

// runUpload drives one session to completion, relaying its events and
// refreshing the samples view on success.
func (s *Server) runUpload(sess *upload.Session, sampleID string, fields map[string]string, files map[string]upload.File) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.trackUpload(sess.ID, cancel)
	defer s.untrackUpload(sess.ID)

	go s.svcs.Samples.Submit(ctx, sess, sampleID, fields, files)

	for ev := range sess.Events() {
		s.publishProgress(ev)
		if ev.Done && ev.Err == nil {
			if err := s.samples.Load(context.Background()); err != nil {
				log.Printf("admin-dashboard: refresh samples after upload: %v", err)
			}
		}
	}
}

// handleCancelUpload aborts an in-flight session; the transfer stops and
// no terminal event is delivered.
func (s *Server) handleCancelUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	s.mu.Lock()
	cancel, ok := s.uploads[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no such upload session")
		return
	}
	cancel()
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": id})
}

func (s *Server) trackUpload(id string, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[id] = cancel
}

func (s *Server) untrackUpload(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, id)
}

// publishProgress hands one event to connected tabs: through redis when
// configured (so every replica's tabs see it), directly into the hub
// otherwise.
func (s *Server) publishProgress(ev upload.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("admin-dashboard: marshal progress event: %v", err)
		return
	}
	if s.rdb == nil {
		s.hub.Broadcast(data)
		return
	}
	if err := s.rdb.Publish(context.Background(), progressChannel, string(data)).Err(); err != nil {
		log.Printf("admin-dashboard: publish progress: %v", err)
	}
}

const progressChannel = "upload-progress"

// RunRedisSubscriber feeds the relay from the shared redis channel. Runs
// until ctx is cancelled; callers start it in a goroutine when redis is
// configured.
func (s *Server) RunRedisSubscriber(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, progressChannel)
	defer sub.Close()

	ch := sub.Channel()
	for msg := range ch {
		s.hub.Broadcast([]byte(msg.Payload))
	}
}
