// internal/model/models.go
package model

// Repository is the mirrored metadata of a single GitHub repository,
// uniquely keyed by the GitHub-assigned repository ID. UpdatedAt keeps the
// remote timestamp verbatim as an opaque ordering key; it is never parsed.
type Repository struct {
	RepoID    int64   `json:"repo_id"`
	Name      string  `json:"name"`
	Owner     string  `json:"owner"`
	Stars     int     `json:"stars"`
	Forks     int     `json:"forks"`
	Language  *string `json:"language"`
	HTMLURL   string  `json:"html_url"`
	UpdatedAt string  `json:"updated_at"`
}
