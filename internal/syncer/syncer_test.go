// internal/syncer/syncer_test.go
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github-repo-mirror/internal/errors"
	"github-repo-mirror/internal/model"
)

// MockFetcher is a mock of the Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) ListRepositories(ctx context.Context, user string) ([]model.Repository, error) {
	args := m.Called(ctx, user)
	return args.Get(0).([]model.Repository), args.Error(1)
}

// MockStore is a mock of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, repo model.Repository) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func testRepos() []model.Repository {
	return []model.Repository{
		{RepoID: 1, Name: "alpha", Owner: "octocat", Stars: 10, HTMLURL: "https://github.com/octocat/alpha", UpdatedAt: "2024-05-02T10:00:00Z"},
		{RepoID: 2, Name: "beta", Owner: "octocat", Stars: 100, HTMLURL: "https://github.com/octocat/beta", UpdatedAt: "2024-05-01T10:00:00Z"},
	}
}

func TestSyncer_Sync(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	t.Run("upserts every fetched repository", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockStore := new(MockStore)
		s := New(mockFetcher, mockStore, logger)

		repos := testRepos()
		mockFetcher.On("ListRepositories", ctx, "octocat").Return(repos, nil).Once()
		mockStore.On("Upsert", mock.Anything, repos[0]).Return(nil).Once()
		mockStore.On("Upsert", mock.Anything, repos[1]).Return(nil).Once()

		res, err := s.Sync(ctx, "octocat")

		require.NoError(t, err)
		assert.Equal(t, Result{Fetched: 2, Saved: 2}, res)
		mockFetcher.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("returns zero counts for a user without repositories", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockStore := new(MockStore)
		s := New(mockFetcher, mockStore, logger)

		mockFetcher.On("ListRepositories", ctx, "octocat").Return([]model.Repository{}, nil).Once()

		res, err := s.Sync(ctx, "octocat")

		require.NoError(t, err)
		assert.Equal(t, Result{}, res)
		mockStore.AssertNotCalled(t, "Upsert")
	})

	t.Run("propagates fetch errors unchanged", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockStore := new(MockStore)
		s := New(mockFetcher, mockStore, logger)

		fetchErr := &custom_errors.UserNotFoundError{User: "ghost"}
		mockFetcher.On("ListRepositories", ctx, "ghost").Return([]model.Repository(nil), fetchErr).Once()

		_, err := s.Sync(ctx, "ghost")

		var notFoundErr *custom_errors.UserNotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "ghost", notFoundErr.User)
		mockStore.AssertNotCalled(t, "Upsert")
	})

	t.Run("fails the whole sync when an upsert fails", func(t *testing.T) {
		mockFetcher := new(MockFetcher)
		mockStore := new(MockStore)
		s := New(mockFetcher, mockStore, logger)

		storeErr := errors.New("connection reset")
		mockFetcher.On("ListRepositories", ctx, "octocat").Return(testRepos(), nil).Once()
		mockStore.On("Upsert", mock.Anything, mock.Anything).Return(storeErr)

		_, err := s.Sync(ctx, "octocat")

		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})
}
