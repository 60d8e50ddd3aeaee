package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	historyrepo "github.com/sitee-labs/sitee-backend/internal/history/repository"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

// Handler serves the recent-generation log.
type Handler struct {
	users   *repository.Repo
	history *historyrepo.Repo
}

func New(users *repository.Repo, history *historyrepo.Repo) *Handler {
	return &Handler{users: users, history: history}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/users/:user_id/history", h.recent)
}

func (h *Handler) recent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	if _, err := h.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	events, err := h.history.Recent(ctx, userID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "events": events})
}
