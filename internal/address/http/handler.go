package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/address"
	"github.com/hirewheels/rental-backend/internal/auth"
)

type Handler struct {
	service address.Service
}

func NewHandler(service address.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	addresses, err := h.service.List(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list addresses"})
		return
	}

	items := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		items[i] = NewAddressResponse(a)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAddressRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), address.CreateRequest{
		UserID:    auth.GetUserID(c),
		Label:     body.Label,
		Line1:     body.Line1,
		Line2:     body.Line2,
		City:      body.City,
		Pincode:   body.Pincode,
		Longitude: body.Longitude,
		Latitude:  body.Latitude,
		IsDefault: body.IsDefault,
	})
	if err != nil {
		switch {
		case errors.Is(err, address.ErrLabelRequired),
			errors.Is(err, address.ErrLine1Required),
			errors.Is(err, address.ErrCityRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create address"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewAddressResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateAddressRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, address.UpdateRequest{
		Label:     body.Label,
		Line1:     body.Line1,
		Line2:     body.Line2,
		City:      body.City,
		Pincode:   body.Pincode,
		Longitude: body.Longitude,
		Latitude:  body.Latitude,
		IsDefault: body.IsDefault,
	}, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, address.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		case errors.Is(err, address.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, address.ErrLabelRequired),
			errors.Is(err, address.ErrLine1Required),
			errors.Is(err, address.ErrCityRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update address"})
		}
		return
	}

	c.JSON(http.StatusOK, NewAddressResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, address.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		case errors.Is(err, address.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete address"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
