// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "github-repo-mirror/internal/errors"
	"github-repo-mirror/internal/model"
	"github-repo-mirror/internal/syncer"
)

const (
	defaultTopLimit = 5
	maxTopLimit     = 50
)

// Store is the read side of the repository mirror.
type Store interface {
	List(ctx context.Context, owner string) ([]model.Repository, error)
	Top(ctx context.Context, owner string, limit int) ([]model.Repository, error)
}

// Syncer triggers a full re-fetch of one GitHub user's repositories.
type Syncer interface {
	Sync(ctx context.Context, user string) (syncer.Result, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	store  Store
	syncer Syncer
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(store Store, syncer Syncer, logger *slog.Logger) http.Handler {
	h := &Handler{
		store:  store,
		syncer: syncer,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/", h.root)
	r.Get("/health", h.healthCheck)
	r.Get("/fetch/{username}", h.fetchRepos)
	r.Get("/repos", h.listRepos)
	r.Get("/top", h.topRepos)

	return r
}

// root serves the service banner and route list.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message":   "GitHub repo mirror service",
		"endpoints": []string{"/fetch/{username}", "/repos", "/top", "/health"},
	})
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fetchRepos triggers a full sync of the user's repositories from GitHub.
// GET /fetch/{username}
func (h *Handler) fetchRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	res, err := h.syncer.Sync(r.Context(), username)
	if err != nil {
		h.respondSyncError(w, username, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"fetched":          res.Fetched,
		"saved_or_updated": res.Saved,
		"owner":            username,
	})
}

// respondSyncError maps sync failures onto HTTP status codes: remote
// not-found and throttling keep their meaning, any other remote-reported
// error becomes a 400, and storage failures stay internal.
func (h *Handler) respondSyncError(w http.ResponseWriter, username string, err error) {
	var notFoundErr *custom_errors.UserNotFoundError
	if errors.As(err, &notFoundErr) {
		respondWithError(w, http.StatusNotFound, "GitHub user not found")
		return
	}

	var rateErr *custom_errors.RateLimitError
	if errors.As(err, &rateErr) {
		respondWithError(w, http.StatusTooManyRequests,
			"Rate limited by the GitHub API. Configure a GITHUB_TOKEN and try again.")
		return
	}

	var apiErr *custom_errors.APIError
	if errors.As(err, &apiErr) {
		respondWithError(w, http.StatusBadRequest, apiErr.Message)
		return
	}

	h.logger.Error("Failed to sync repositories", "user", username, "error", err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// listRepos returns mirrored repositories ordered by updated_at descending.
// GET /repos?owner=<optional>
func (h *Handler) listRepos(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")

	repos, err := h.store.List(r.Context(), owner)
	if err != nil {
		h.logger.Error("Failed to list repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]repoResponse, len(repos))
	for i, repo := range repos {
		out[i] = toRepoResponse(repo)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"count": len(out),
		"repos": out,
	})
}

// topRepos returns the N most-starred mirrored repositories.
// GET /top?owner=<optional>&limit=<1..50, default 5>
func (h *Handler) topRepos(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")

	limit := defaultTopLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxTopLimit {
			respondWithError(w, http.StatusBadRequest,
				"Invalid 'limit' parameter. Must be an integer between 1 and 50.")
			return
		}
	}

	repos, err := h.store.Top(r.Context(), owner, limit)
	if err != nil {
		h.logger.Error("Failed to get top repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]topRepoResponse, len(repos))
	for i, repo := range repos {
		out[i] = toTopRepoResponse(repo)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"count":     len(out),
		"top_repos": out,
	})
}
