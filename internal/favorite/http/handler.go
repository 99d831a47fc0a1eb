package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/favorite"
)

type Handler struct {
	service favorite.Service
}

func NewHandler(service favorite.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	favorites, err := h.service.List(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}

	items := make([]FavoriteResponse, len(favorites))
	for i, f := range favorites {
		items[i] = NewFavoriteResponse(f)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Add(c *gin.Context) {
	vehicleID := c.Param("id")
	if _, err := uuid.Parse(vehicleID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	f, err := h.service.Add(c.Request.Context(), auth.GetUserID(c), vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, favorite.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		}
		return
	}

	c.JSON(http.StatusOK, NewFavoriteResponse(f))
}

func (h *Handler) Remove(c *gin.Context) {
	vehicleID := c.Param("id")
	if _, err := uuid.Parse(vehicleID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), auth.GetUserID(c), vehicleID); err != nil {
		switch {
		case errors.Is(err, favorite.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
