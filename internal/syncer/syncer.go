// internal/syncer/syncer.go
package syncer

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github-repo-mirror/internal/model"
)

const (
	// Number of rows to upsert in parallel during one sync
	concurrency = 5
)

// Fetcher lists every repository owned by a GitHub user.
type Fetcher interface {
	ListRepositories(ctx context.Context, user string) ([]model.Repository, error)
}

// Store persists fetched repository rows.
type Store interface {
	Upsert(ctx context.Context, repo model.Repository) error
}

// Result summarizes one sync run. Fetched and Saved are equal on success:
// every fetched row is upserted.
type Result struct {
	Fetched int
	Saved   int
}

// Syncer orchestrates the fetching and storing of repository metadata.
type Syncer struct {
	fetcher Fetcher
	store   Store
	logger  *slog.Logger
}

// New creates a new Syncer instance.
func New(fetcher Fetcher, store Store, logger *slog.Logger) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// Sync fetches all repositories owned by user and upserts each into the
// store. Upserts are independent single-row statements; the first store
// error cancels the remaining work and fails the whole sync.
func (s *Syncer) Sync(ctx context.Context, user string) (Result, error) {
	logger := s.logger.With("user", user)
	logger.Info("Syncing repositories")

	repos, err := s.fetcher.ListRepositories(ctx, user)
	if err != nil {
		return Result{}, err
	}
	logger.Info("Fetched repositories", "count", len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, repo := range repos {
		g.Go(func() error {
			return s.store.Upsert(gctx, repo)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	logger.Info("Sync complete", "saved", len(repos))
	return Result{Fetched: len(repos), Saved: len(repos)}, nil
}
