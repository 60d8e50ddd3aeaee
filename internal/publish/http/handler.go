package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sitee-labs/sitee-backend/internal/publish"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

// Handler exposes project publishing. Local state changes only after
// the deployment succeeds.
type Handler struct {
	repo   *repository.Repo
	client *publish.Client
}

func New(repo *repository.Repo, client *publish.Client) *Handler {
	return &Handler{repo: repo, client: client}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/users/:user_id/projects/:timestamp/publish", h.publish)
}

type publishRequest struct {
	HTMLContent string `json:"html_content" binding:"required"`
}

func (h *Handler) publish(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Server is not configured for publishing. Missing VERCEL_ACCESS_TOKEN.",
		})
		return
	}

	timestamp, err := strconv.ParseInt(c.Param("timestamp"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	userID := c.Param("user_id")

	user, err := h.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user.FindProject(timestamp) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	url, err := h.client.Deploy(ctx, publish.DeploymentName(userID, timestamp), req.HTMLContent)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.SetPublishedURL(ctx, userID, timestamp, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
