// internal/github/client.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-repo-mirror/internal/errors"
	"github-repo-mirror/internal/model"
)

const (
	// Max page size accepted by the GitHub repository listing endpoint.
	perPage = 100
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance. An empty token
// leaves requests unauthenticated (subject to GitHub's lower rate limit).
// The timeout applies to every outbound request individually.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return &Client{
		gh:     github.NewClient(httpClient),
		logger: logger,
	}
}

// SetBaseURL points the client at a different API endpoint, e.g. a GitHub
// Enterprise instance or a test server. The URL must end with a slash.
func (c *Client) SetBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	c.gh.BaseURL = u
	return nil
}

// ListRepositories fetches every repository owned by the given user and
// translates each one to our internal model.
//
// Pagination follows the "next" relation GitHub advertises in the Link
// response header; the loop ends on the first response without one, so an
// unbounded number of pages is supported.
func (c *Client) ListRepositories(ctx context.Context, user string) ([]model.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type: "owner",
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []model.Repository
	for {
		c.logger.Debug("Fetching repositories page", "user", user, "page", opts.Page)

		repos, resp, err := c.gh.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, translateError(user, err)
		}

		for _, r := range repos {
			all = append(all, toInternalRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// translateError maps go-github errors onto our failure taxonomy.
func translateError(user string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &custom_errors.RateLimitError{}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &custom_errors.RateLimitError{}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return &custom_errors.UserNotFoundError{User: user}
		case http.StatusForbidden, http.StatusTooManyRequests:
			return &custom_errors.RateLimitError{}
		default:
			return &custom_errors.APIError{
				StatusCode: ghErr.Response.StatusCode,
				Message:    ghErr.Message,
			}
		}
	}

	// Transport-level failure (timeout, connection refused, ...).
	return err
}

// toInternalRepository translates a github.Repository object to our internal
// model.Repository. The remote timestamp is kept as an opaque RFC3339 string.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		RepoID:    r.GetID(),
		Name:      r.GetName(),
		Owner:     r.GetOwner().GetLogin(),
		Stars:     r.GetStargazersCount(),
		Forks:     r.GetForksCount(),
		Language:  r.Language,
		HTMLURL:   r.GetHTMLURL(),
		UpdatedAt: r.GetUpdatedAt().UTC().Format(time.RFC3339),
	}
}
