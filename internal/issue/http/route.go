package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers issue routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	issues := g.Group("/issues")
	issues.Use(authMiddleware)
	{
		issues.GET("", h.ListMine)
		issues.POST("", h.Create)
		issues.GET("/:id", h.Get)
		issues.PATCH("/:id/status", h.UpdateStatus)
	}
}
