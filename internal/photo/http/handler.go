package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/photo"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart "photo" field, normalizes the image and
// returns the stored photo's URLs.
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), header, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, photo.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		}
		return
	}

	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := photo.ThumbnailURL(p.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusCreated, PhotoUploadResponse{
		PhotoID:      p.ID,
		URL:          photo.URL(p.ID),
		ThumbnailURL: thumbURL,
	})
}

// Serve streams the photo content by ID.
func (h *Handler) Serve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, p, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, photo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load photo"})
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing sensible to send.
		return
	}
}

// ServeThumbnail streams the photo thumbnail by ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, p, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotFound), errors.Is(err, photo.ErrNoThumbnail):
			c.JSON(http.StatusNotFound, gin.H{"error": "thumbnail not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load thumbnail"})
		}
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}
