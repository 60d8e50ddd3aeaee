package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitee-labs/sitee-backend/internal/users/domain"
)

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.ID, req.Credits)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.repo.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) saveProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	project := domain.Project{
		Name:         req.Name,
		HTML:         req.HTML,
		Timestamp:    req.Timestamp,
		PublishedURL: req.PublishedURL,
		React:        req.React,
		Suggestions:  req.Suggestions,
	}
	saved, err := h.repo.SaveProject(c.Request.Context(), c.Param("user_id"), project)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) updateProject(c *gin.Context) {
	timestamp, ok := parseTimestamp(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	project := domain.Project{
		Name:         req.Name,
		HTML:         req.HTML,
		PublishedURL: req.PublishedURL,
		React:        req.React,
	}
	updated, err := h.repo.UpdateProject(c.Request.Context(), c.Param("user_id"), timestamp, project)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteProject(c *gin.Context) {
	timestamp, ok := parseTimestamp(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteProject(c.Request.Context(), c.Param("user_id"), timestamp); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteAllProjects(c *gin.Context) {
	if err := h.repo.DeleteAllProjects(c.Request.Context(), c.Param("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All projects for user have been deleted."})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseTimestamp(c *gin.Context) (int64, bool) {
	timestamp, err := strconv.ParseInt(c.Param("timestamp"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
		return 0, false
	}
	return timestamp, true
}
