package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers inspection routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.POST("/bookings/:id/inspections", authMiddleware, h.Create)
	g.GET("/bookings/:id/inspections", authMiddleware, h.ListByBooking)
}
