package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admin-dashboard/internal/ticket"
)

func (s *Server) handleTicketStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svcs.Support.Stats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleTicketThread serves the normalized conversation for one loaded
// ticket. The thread is derived, never fetched: the backend has no
// single-ticket endpoint, so the ticket must be in the current page.
func (s *Server) handleTicketThread(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, ok := s.findTicket(id)
	if !ok {
		if err := s.tickets.Load(r.Context()); err != nil {
			fail(w, err)
			return
		}
		t, ok = s.findTicket(id)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "ticket not found in the current page")
		return
	}

	writeJSON(w, http.StatusOK, ticket.BuildThread(t))
}

func (s *Server) findTicket(id string) (ticket.Ticket, bool) {
	for _, t := range s.tickets.State().Items {
		if t.ID == id {
			return t, true
		}
	}
	return ticket.Ticket{}, false
}

func (s *Server) handleTicketStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Status ticket.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !validStatus(payload.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	item, err := s.tickets.Update(r.Context(), id, map[string]any{"status": string(payload.Status)})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleTicketRespond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Response string        `json:"response"`
		Status   ticket.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Response == "" {
		writeError(w, http.StatusBadRequest, "response is required")
		return
	}
	if payload.Status != "" && !validStatus(payload.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	err := s.tickets.Do(r.Context(), "respond", id, func(ctx context.Context) error {
		return s.svcs.Support.Respond(ctx, id, payload.Response, payload.Status)
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"responded": id})
}

func validStatus(st ticket.Status) bool {
	for _, v := range ticket.Statuses() {
		if v == st {
			return true
		}
	}
	return false
}
