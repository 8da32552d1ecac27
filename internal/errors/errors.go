// internal/errors/errors.go
package errors

import "fmt"

// UserNotFoundError is returned when the requested GitHub user does not exist.
type UserNotFoundError struct {
	User string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("github user %q not found", e.User)
}

// RateLimitError is returned when GitHub throttles the request.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limited by the GitHub API"
}

// APIError covers any other non-success GitHub response, including
// remote-reported error payloads.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API error (status %d): %s", e.StatusCode, e.Message)
}
