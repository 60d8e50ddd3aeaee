package http

import "github.com/gin-gonic/gin"

// Register attaches user and project routes to the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/create-user", h.createUser)
	r.GET("/all-users", h.listUsers)

	r.GET("/users/:user_id", h.getUser)
	r.POST("/users/:user_id/projects", h.saveProject)
	r.PUT("/users/:user_id/projects/:timestamp", h.updateProject)
	r.DELETE("/users/:user_id/projects/:timestamp", h.deleteProject)
	r.DELETE("/users/:user_id/projects", h.deleteAllProjects)
}
