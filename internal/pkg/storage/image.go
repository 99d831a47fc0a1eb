package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor normalizes uploaded condition photos and produces
// thumbnails for listing views.
type ImageProcessor struct {
	maxEdge int
	quality int
}

// NewImageProcessor creates a new ImageProcessor with default limits.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		maxEdge: 1600,
		quality: 85,
	}
}

// Normalize re-encodes a photo as JPEG, auto-rotating it by EXIF
// orientation and capping the longest edge. Phone uploads routinely
// exceed 10MB; normalized photos stay well under 1MB.
func (p *ImageProcessor) Normalize(content io.Reader) (io.Reader, error) {
	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxEdge || bounds.Dy() > p.maxEdge {
		img = imaging.Fit(img, p.maxEdge, p.maxEdge, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

// GenerateThumbnail creates a thumbnail from the source image.
// maxWidth and maxHeight define the bounding box for the thumbnail.
// It returns the thumbnail content as a JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}
