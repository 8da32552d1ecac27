// internal/store/store.go
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github-repo-mirror/internal/model"
)

const repoColumns = `repo_id, name, owner, stars, forks, language, html_url, updated_at`

// Store persists mirrored repository rows in PostgreSQL. The schema is owned
// by the migrations in migrations/ and applied at startup.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store backed by the given connection pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

// Upsert inserts the repository or, when a row with the same repo_id already
// exists, overwrites all mutable fields. A single statement, atomic per row.
func (s *Store) Upsert(ctx context.Context, repo model.Repository) error {
	const query = `
		INSERT INTO repos (` + repoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (repo_id) DO UPDATE SET
			name = EXCLUDED.name,
			owner = EXCLUDED.owner,
			stars = EXCLUDED.stars,
			forks = EXCLUDED.forks,
			language = EXCLUDED.language,
			html_url = EXCLUDED.html_url,
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, query,
		repo.RepoID, repo.Name, repo.Owner, repo.Stars, repo.Forks,
		repo.Language, repo.HTMLURL, repo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert repository %d: %w", repo.RepoID, err)
	}
	return nil
}

// List returns all repositories ordered by updated_at descending. A non-empty
// owner restricts the result to that owner's rows.
func (s *Store) List(ctx context.Context, owner string) ([]model.Repository, error) {
	query := `SELECT ` + repoColumns + ` FROM repos ORDER BY updated_at DESC`
	args := []any{}
	if owner != "" {
		query = `SELECT ` + repoColumns + ` FROM repos WHERE owner = $1 ORDER BY updated_at DESC`
		args = append(args, owner)
	}
	return s.queryRepos(ctx, query, args...)
}

// Top returns up to limit repositories ordered by stars descending. A
// non-empty owner restricts the result to that owner's rows. The caller is
// responsible for validating limit.
func (s *Store) Top(ctx context.Context, owner string, limit int) ([]model.Repository, error) {
	query := `SELECT ` + repoColumns + ` FROM repos ORDER BY stars DESC LIMIT $1`
	args := []any{limit}
	if owner != "" {
		query = `SELECT ` + repoColumns + ` FROM repos WHERE owner = $1 ORDER BY stars DESC LIMIT $2`
		args = []any{owner, limit}
	}
	return s.queryRepos(ctx, query, args...)
}

func (s *Store) queryRepos(ctx context.Context, query string, args ...any) ([]model.Repository, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query repositories: %w", err)
	}
	defer rows.Close()

	var repos []model.Repository
	for rows.Next() {
		var r model.Repository
		err := rows.Scan(&r.RepoID, &r.Name, &r.Owner, &r.Stars, &r.Forks,
			&r.Language, &r.HTMLURL, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan repository row: %w", err)
		}
		repos = append(repos, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read repository rows: %w", err)
	}
	return repos, nil
}
