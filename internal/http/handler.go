package httpapp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/resolver"
	"github.com/cesargomez89/gameshelf/internal/store"
)

type Handler struct {
	DB       *store.DB
	Resolver *resolver.Resolver
	Logger   *logger.Logger
}

func NewHandler(db *store.DB, res *resolver.Resolver, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		DB:       db,
		Resolver: res,
		Logger:   log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/sync/{source}", h.EnqueueSync)
		r.Get("/jobs", h.ListJobs)
		r.Get("/jobs/{id}", h.GetJob)

		r.Get("/games", h.ListGames)
		r.Get("/games/{id}", h.GetGame)
		r.Get("/users/{userID}/library", h.GetLibrary)

		r.Post("/admin/merge", h.MergeReleases)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
