package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers favorite routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/my/favorites", authMiddleware, h.List)
	g.PUT("/vehicles/:id/favorite", authMiddleware, h.Add)
	g.DELETE("/vehicles/:id/favorite", authMiddleware, h.Remove)
}
