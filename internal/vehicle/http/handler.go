package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/pkg/response"
	"github.com/hirewheels/rental-backend/internal/vehicle"
)

type Handler struct {
	service vehicle.Service
}

func NewHandler(service vehicle.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := vehicle.Filter{
		Category:   c.Query("category"),
		ActiveOnly: true,
		Page:       page,
		PageSize:   pageSize,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	vehicles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vehicles"})
		return
	}

	items := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = NewVehicleResponse(v)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// ListMine returns the authenticated owner's listings, including
// deactivated ones.
func (h *Handler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := vehicle.Filter{
		OwnerID:  auth.GetUserID(c),
		Page:     page,
		PageSize: pageSize,
	}

	vehicles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vehicles"})
		return
	}

	items := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = NewVehicleResponse(v)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get vehicle"})
		return
	}

	c.JSON(http.StatusOK, NewVehicleResponse(v))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateVehicleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := vehicle.CreateRequest{
		OwnerID:            userID,
		Name:               body.Name,
		Category:           body.Category,
		Registration:       body.Registration,
		BasePricePerDay:    body.BasePricePerDay,
		HourlyRate:         body.HourlyRate,
		AdditionalKmPerDay: body.AdditionalKmPerDay,
		IsAutoApproval:     body.IsAutoApproval,
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrEmptyName),
			errors.Is(err, vehicle.ErrInvalidCategory),
			errors.Is(err, vehicle.ErrInvalidRates),
			errors.Is(err, vehicle.ErrInvalidRegistration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vehicle"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewVehicleResponse(v))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateVehicleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := vehicle.UpdateRequest{
		Name:               body.Name,
		BasePricePerDay:    body.BasePricePerDay,
		HourlyRate:         body.HourlyRate,
		AdditionalKmPerDay: body.AdditionalKmPerDay,
		IsAutoApproval:     body.IsAutoApproval,
		IsActive:           body.IsActive,
	}

	v, err := h.service.Update(c.Request.Context(), id, req, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		case errors.Is(err, vehicle.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, vehicle.ErrEmptyName), errors.Is(err, vehicle.ErrInvalidRates):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, NewVehicleResponse(v))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		case errors.Is(err, vehicle.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete vehicle"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
