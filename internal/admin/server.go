// Package admin exposes the dashboard's JSON surface: one route set per
// page, each backed by a collection view over the backend API, plus the
// websocket relay for upload progress.
package admin

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"admin-dashboard/internal/catalog"
	"admin-dashboard/internal/collection"
	"admin-dashboard/internal/ticket"
)

// Services groups the catalog bindings the server drives.
type Services struct {
	Music     *catalog.MusicService
	Samples   *catalog.SampleService
	Hot       *catalog.HotService
	Playlists *catalog.PlaylistService
	Store     *catalog.StoreService
	Support   *catalog.SupportService
}

type Server struct {
	svcs Services

	music     *collection.View[catalog.Music]
	samples   *collection.View[catalog.Sample]
	hot       *collection.View[catalog.HotPlaylist]
	playlists *collection.View[catalog.Playlist]
	listings  *collection.View[catalog.Listing]
	tickets   *collection.View[ticket.Ticket]

	hub *Hub
	rdb *redis.Client

	mu      sync.Mutex
	uploads map[string]func() // session id -> cancel
}

// NewServer builds the dashboard server. rdb may be nil; progress events
// then stay in-process.
func NewServer(svcs Services, hub *Hub, rdb *redis.Client) *Server {
	return &Server{
		svcs:      svcs,
		music:     svcs.Music.View(),
		samples:   svcs.Samples.View(),
		hot:       svcs.Hot.View(),
		playlists: svcs.Playlists.View(),
		listings:  svcs.Store.View(),
		tickets:   svcs.Support.View(),
		hub:       hub,
		rdb:       rdb,
		uploads:   make(map[string]func()),
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ws/progress", s.handleWS)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/music", listHandler(s.music))
		r.Post("/music", s.handleCreateMusic)
		r.Put("/music/{id}", s.handleUpdateMusic)
		r.Delete("/music/{id}", deleteHandler(s.music))

		r.Get("/samples", listHandler(s.samples))
		r.Post("/samples/upload", s.handleUploadSample)
		r.Delete("/samples/{id}", deleteHandler(s.samples))
		r.Delete("/uploads/{sessionId}", s.handleCancelUpload)

		r.Get("/hot", listHandler(s.hot))
		r.Get("/playlists", listHandler(s.playlists))

		r.Get("/store/stats", s.handleStoreStats)
		r.Get("/store/listings", listHandler(s.listings))
		r.Put("/store/listings/{id}/status", s.handleListingStatus)
		r.Delete("/store/listings/{id}", deleteHandler(s.listings))
		r.Post("/store/rights", s.handleGrantRights)

		r.Get("/support/tickets", listHandler(s.tickets))
		r.Get("/support/stats", s.handleTicketStats)
		r.Get("/support/tickets/{id}/thread", s.handleTicketThread)
		r.Patch("/support/tickets/{id}/status", s.handleTicketStatus)
		r.Post("/support/tickets/{id}/respond", s.handleTicketRespond)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "admin-dashboard",
	})
}

// listHandler serves one page's list: mount the view with the request's
// filter and page, then return the derived visible slice.
func listHandler[T any](v *collection.View[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := collection.Filter{
			Search:   q.Get("search"),
			Category: q.Get("category"),
			Status:   q.Get("status"),
		}
		page, _ := strconv.Atoi(q.Get("page"))

		if err := v.Mount(r.Context(), f, page); err != nil {
			fail(w, err)
			return
		}
		st := v.State()
		items := v.Visible()
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":      items,
			"totalCount": v.VisibleTotal(),
			"page":       st.Page,
			"pageSize":   st.PageSize,
		})
	}
}

// deleteHandler issues a confirmed delete. Without confirm=true no
// request reaches the backend.
func deleteHandler[T any](v *collection.View[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		confirmed := r.URL.Query().Get("confirm") == "true"
		if err := v.Remove(r.Context(), id, confirmed); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	}
}
