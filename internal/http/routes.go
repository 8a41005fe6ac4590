package httpapp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/store"
)

// EnqueueSync queues a sync job for a user against one source. At most one
// queued-or-running job exists per (user, source); a duplicate request
// answers with the job already in flight.
func (h *Handler) EnqueueSync(w http.ResponseWriter, r *http.Request) {
	source := domain.Source(chi.URLParam(r, "source"))
	if !source.Valid() {
		h.writeError(w, http.StatusBadRequest, "unknown source")
		return
	}

	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	active, err := h.DB.GetActiveSyncJob(body.UserID, source)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if active != nil {
		h.writeJSON(w, http.StatusOK, active)
		return
	}

	job := &domain.SyncJob{
		ID:     uuid.NewString(),
		UserID: body.UserID,
		Source: source,
		Status: domain.JobStatusQueued,
	}
	if err := h.DB.CreateSyncJob(job); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusAccepted, job)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.DB.ListSyncJobs(50)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.SyncJob{}
	}
	h.writeJSON(w, http.StatusOK, jobs)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.DB.GetSyncJob(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		h.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	h.writeJSON(w, http.StatusOK, job)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.DB.ListGames(200)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if games == nil {
		games = []domain.Game{}
	}
	h.writeJSON(w, http.StatusOK, games)
}

// GetGame answers with a game and all of its releases.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	game, err := h.DB.GetGameByID(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if game == nil {
		h.writeError(w, http.StatusNotFound, "game not found")
		return
	}

	releases, err := h.DB.ReleasesByGame(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if releases == nil {
		releases = []domain.Release{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"game":     game,
		"releases": releases,
	})
}

func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DB.ListLibrary(chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []store.LibraryEntry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// MergeReleases folds one release into another. Intended for operators
// cleaning up duplicates the automatic paths could not catch.
func (h *Handler) MergeReleases(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Winner string `json:"winner"`
		Loser  string `json:"loser"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Winner == "" || body.Loser == "" {
		h.writeError(w, http.StatusBadRequest, "winner and loser are required")
		return
	}

	if err := h.Resolver.Merge(r.Context(), body.Winner, body.Loser); err != nil {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"winner": body.Winner})
}
