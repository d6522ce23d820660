package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-dashboard/internal/catalog"
)

func (s *Server) handleStoreStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svcs.Store.Stats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload catalog.ListingStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	item, err := s.listings.Update(r.Context(), id, payload)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleGrantRights(w http.ResponseWriter, r *http.Request) {
	var grant catalog.RightsGrant
	if err := json.NewDecoder(r.Body).Decode(&grant); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if grant.UserID == "" || grant.RightsAmount <= 0 {
		writeError(w, http.StatusBadRequest, "userId and a positive rightsAmount are required")
		return
	}

	if err := s.svcs.Store.GrantRights(r.Context(), grant); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granted": grant.UserID})
}
