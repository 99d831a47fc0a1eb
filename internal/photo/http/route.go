package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers photo routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/photos")
	group.Use(authMiddleware)

	group.POST("", h.Upload)
	group.GET("/:id", h.Serve)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
}
