package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers review routes. Listing reviews for a vehicle
// is public; writing requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/vehicles/:id/reviews", h.ListByVehicle)

	reviews := g.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.POST("", h.Create)
		reviews.PATCH("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}
