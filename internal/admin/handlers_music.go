package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-dashboard/internal/catalog"
)

func (s *Server) handleCreateMusic(w http.ResponseWriter, r *http.Request) {
	var payload catalog.MusicPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Title == "" || payload.Artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	item, err := s.music.Create(r.Context(), payload)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateMusic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload catalog.MusicPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.music.Update(r.Context(), id, payload)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
