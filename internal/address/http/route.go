package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers address routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	addresses := g.Group("/addresses")
	addresses.Use(authMiddleware)
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.PATCH("/:id", h.Update)
		addresses.DELETE("/:id", h.Delete)
	}
}
