package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("/:id/extension/quote", h.Quote)
		bookings.POST("/:id/extension", h.Start)
		bookings.GET("/:id/extensions", h.ListByBooking)
	}

	extensions := g.Group("/extensions")
	extensions.Use(authMiddleware)
	{
		extensions.GET("/:id", h.Get)
		extensions.PATCH("/:id", h.ChangeRequestedEnd)
		extensions.POST("/:id/recheck", h.Recheck)
		extensions.POST("/:id/request", h.Request)
		extensions.POST("/:id/payment", h.SubmitPayment)
	}
}
