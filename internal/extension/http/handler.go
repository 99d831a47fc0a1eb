package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/extension"
	"github.com/hirewheels/rental-backend/internal/pkg/response"
)

type Handler struct {
	service extension.Service
}

func NewHandler(service extension.Service) *Handler {
	return &Handler{service: service}
}

// Quote prices an extension without creating a request.
func (h *Handler) Quote(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body QuoteExtensionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	q, err := h.service.Quote(c.Request.Context(), bookingID, userID, body.RequestedEnd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}

// Start creates an extension request and runs the first availability check.
func (h *Handler) Start(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body QuoteExtensionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	r, err := h.service.Start(c.Request.Context(), bookingID, userID, body.RequestedEnd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExtensionResponse(r))
}

// ListByBooking lists extension requests for one booking.
func (h *Handler) ListByBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := auth.GetUserID(c)
	requests, total, err := h.service.ListByBooking(c.Request.Context(), bookingID, userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ExtensionResponse, len(requests))
	for i, r := range requests {
		items[i] = NewExtensionResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtensionResponse(r))
}

// ChangeRequestedEnd reprices the request for a new end time,
// superseding any in-flight availability check.
func (h *Handler) ChangeRequestedEnd(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body QuoteExtensionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.ChangeRequestedEnd(c.Request.Context(), id, auth.GetUserID(c), body.RequestedEnd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtensionResponse(r))
}

// Recheck re-runs the availability check for a pending request.
func (h *Handler) Recheck(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.Recheck(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtensionResponse(r))
}

// Request confirms the extension, routing it to payment collection or
// to the owner's manual review queue.
func (h *Handler) Request(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.RequestExtension(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtensionResponse(r))
}

// SubmitPayment charges the selected method for the quoted total.
func (h *Handler) SubmitPayment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SubmitPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.SubmitPayment(c.Request.Context(), id, auth.GetUserID(c), body.MethodID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtensionResponse(r))
}
