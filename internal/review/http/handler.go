package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/pkg/response"
	"github.com/hirewheels/rental-backend/internal/review"
)

type Handler struct {
	service review.Service
}

func NewHandler(service review.Service) *Handler {
	return &Handler{service: service}
}

// ListByVehicle returns reviews for a vehicle. Public.
func (h *Handler) ListByVehicle(c *gin.Context) {
	vehicleID := c.Param("id")
	if _, err := uuid.Parse(vehicleID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := h.service.List(c.Request.Context(), review.Filter{
		VehicleID: vehicleID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = NewReviewResponse(rv)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		BookingID: body.BookingID,
		UserID:    auth.GetUserID(c),
		Rating:    body.Rating,
		Comment:   body.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidRating), errors.Is(err, review.ErrBookingNotEnded):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, review.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, review.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, review.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rv))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, err := h.service.Update(c.Request.Context(), id, review.UpdateRequest{
		Rating:  body.Rating,
		Comment: body.Comment,
	}, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, review.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, review.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		}
		return
	}

	c.JSON(http.StatusOK, NewReviewResponse(rv))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, review.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
