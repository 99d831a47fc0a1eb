package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/inspection"
)

type Handler struct {
	service inspection.Service
}

func NewHandler(service inspection.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateInspectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sections := make([]inspection.Section, len(body.Sections))
	for i, sec := range body.Sections {
		sections[i] = inspection.Section{
			Name:      sec.Name,
			Condition: inspection.Condition(sec.Condition),
			Note:      sec.Note,
		}
	}

	ins, err := h.service.Create(c.Request.Context(), inspection.CreateRequest{
		BookingID:   bookingID,
		InspectorID: auth.GetUserID(c),
		Phase:       body.Phase,
		OdometerKm:  body.OdometerKm,
		FuelPercent: body.FuelPercent,
		Sections:    sections,
		PhotoIDs:    body.PhotoIDs,
		Notes:       body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, inspection.ErrInvalidPhase),
			errors.Is(err, inspection.ErrInvalidFuel),
			errors.Is(err, inspection.ErrInvalidOdometer),
			errors.Is(err, inspection.ErrInvalidCondition),
			errors.Is(err, inspection.ErrOdometerRollback):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, inspection.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, inspection.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, inspection.ErrAlreadyRecorded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create inspection"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewInspectionResponse(ins))
}

func (h *Handler) ListByBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	inspections, err := h.service.ListByBooking(c.Request.Context(), bookingID, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, inspection.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, inspection.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inspections"})
		}
		return
	}

	items := make([]InspectionResponse, len(inspections))
	for i, ins := range inspections {
		items[i] = NewInspectionResponse(ins)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
