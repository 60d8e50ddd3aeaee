package http

import "github.com/sitee-labs/sitee-backend/internal/users/repository"

// Handler bundles the dependencies for user and project endpoints.
type Handler struct {
	repo *repository.Repo
}

func New(repo *repository.Repo) *Handler {
	return &Handler{repo: repo}
}

type createUserRequest struct {
	ID      string `json:"id"`
	Credits *int   `json:"credits"`
}

type projectRequest struct {
	Name         string  `json:"name"`
	HTML         string  `json:"html"`
	Timestamp    int64   `json:"timestamp"`
	PublishedURL *string `json:"published_url"`
	React        *string `json:"react"`
	Suggestions  *string `json:"suggestions"`
}
