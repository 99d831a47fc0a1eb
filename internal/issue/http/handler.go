package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/issue"
	"github.com/hirewheels/rental-backend/internal/pkg/response"
)

type Handler struct {
	service issue.Service
}

func NewHandler(service issue.Service) *Handler {
	return &Handler{service: service}
}

// ListMine returns issues the authenticated user reported.
func (h *Handler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	issues, total, err := h.service.List(c.Request.Context(), issue.Filter{
		ReporterID: auth.GetUserID(c),
		Status:     c.Query("status"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list issues"})
		return
	}

	items := make([]IssueResponse, len(issues))
	for i, iss := range issues {
		items[i] = NewIssueResponse(iss)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateIssueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	iss, err := h.service.Create(c.Request.Context(), issue.CreateRequest{
		BookingID:   body.BookingID,
		ReporterID:  auth.GetUserID(c),
		Kind:        body.Kind,
		Description: body.Description,
		PhotoIDs:    body.PhotoIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrInvalidKind), errors.Is(err, issue.ErrDescriptionRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, issue.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, issue.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create issue"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewIssueResponse(iss))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	iss, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
		case errors.Is(err, issue.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get issue"})
		}
		return
	}

	c.JSON(http.StatusOK, NewIssueResponse(iss))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateIssueStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	iss, err := h.service.UpdateStatus(c.Request.Context(), id, issue.Status(body.Status), auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
		case errors.Is(err, issue.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		case errors.Is(err, issue.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update issue"})
		}
		return
	}

	c.JSON(http.StatusOK, NewIssueResponse(iss))
}
