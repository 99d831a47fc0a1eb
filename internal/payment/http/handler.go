package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/payment"
	"github.com/hirewheels/rental-backend/internal/pkg/request"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	methods, err := h.service.ListMethods(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payment methods"})
		return
	}

	items := make([]MethodResponse, len(methods))
	for i, m := range methods {
		items[i] = NewMethodResponse(m)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateMethodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := payment.CreateMethodRequest{
		UserID:    auth.GetUserID(c),
		Kind:      body.Kind,
		Label:     body.Label,
		Masked:    body.Masked,
		IsDefault: body.IsDefault,
	}

	m, err := h.service.AddMethod(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidKind), errors.Is(err, payment.ErrLabelRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add payment method"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewMethodResponse(m))
}

func (h *Handler) SetDefault(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.SetDefault(c.Request.Context(), req.ID, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, payment.ErrMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set default method"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.RemoveMethod(c.Request.Context(), req.ID, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, payment.ErrMethodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove payment method"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
