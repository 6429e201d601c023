package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
)

// RegisterPublic attaches the visitor routes to rg.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/projects", h.browse)
	rg.GET("/projects/:slug", h.project)
	rg.GET("/stats", h.stats)
}

// RegisterAdmin attaches the admin routes. Callers are rejected before the
// body is read; the pipeline authorizes again on its own.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	admin := rg.Group("", auth.RequireAdminMiddleware())
	admin.GET("/projects", h.adminList)
	admin.POST("/projects", h.create)
	admin.PUT("/projects/:id", h.update)
	admin.DELETE("/projects/:id", h.delete)
}
