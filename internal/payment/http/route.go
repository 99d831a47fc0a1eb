package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers payment method management routes.
// All routes require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	methods := g.Group("/payment-methods")
	methods.Use(authMiddleware)
	{
		methods.GET("", h.List)
		methods.POST("", h.Create)
		methods.POST("/:id/default", h.SetDefault)
		methods.DELETE("/:id", h.Delete)
	}
}
