// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"

	"github-repo-mirror/internal/model"
)

// repoResponse is the /repos entry shape.
type repoResponse struct {
	Name      string  `json:"name"`
	Owner     string  `json:"owner"`
	Stars     int     `json:"stars"`
	Forks     int     `json:"forks"`
	Language  *string `json:"language"`
	HTMLURL   string  `json:"html_url"`
	UpdatedAt string  `json:"updated_at"`
}

// topRepoResponse is the /top entry shape; it omits updated_at.
type topRepoResponse struct {
	Name     string  `json:"name"`
	Owner    string  `json:"owner"`
	Stars    int     `json:"stars"`
	Forks    int     `json:"forks"`
	Language *string `json:"language"`
	HTMLURL  string  `json:"html_url"`
}

func toRepoResponse(r model.Repository) repoResponse {
	return repoResponse{
		Name:      r.Name,
		Owner:     r.Owner,
		Stars:     r.Stars,
		Forks:     r.Forks,
		Language:  r.Language,
		HTMLURL:   r.HTMLURL,
		UpdatedAt: r.UpdatedAt,
	}
}

func toTopRepoResponse(r model.Repository) topRepoResponse {
	return topRepoResponse{
		Name:     r.Name,
		Owner:    r.Owner,
		Stars:    r.Stars,
		Forks:    r.Forks,
		Language: r.Language,
		HTMLURL:  r.HTMLURL,
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
