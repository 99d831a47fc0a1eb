package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers vehicle listing and owner management routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	vehicles := g.Group("/vehicles")
	{
		vehicles.GET("", h.List)
		vehicles.GET("/:id", h.Get)

		vehicles.POST("", authMiddleware, h.Create)
		vehicles.PATCH("/:id", authMiddleware, h.Update)
		vehicles.DELETE("/:id", authMiddleware, h.Delete)
	}

	g.GET("/my/vehicles", authMiddleware, h.ListMine)
}
