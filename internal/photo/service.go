package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirewheels/rental-backend/internal/pkg/storage"
)

// DefaultMaxUploadBytes caps raw uploads before normalization.
const DefaultMaxUploadBytes = 15 << 20

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, userID string) (*Photo, error)
	Get(ctx context.Context, id string) (*Photo, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor

	maxUploadBytes int64
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:           repo,
		storage:        store,
		imgProc:        storage.NewImageProcessor(),
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, userID string) (*Photo, error) {
	if header.Size > s.maxUploadBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	// Normalize before storing: re-encode as JPEG, auto-rotate, cap size.
	// A decode failure means the payload is not a real image regardless
	// of its declared content type.
	normalized, err := s.imgProc.Normalize(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotAnImage
	}

	normBytes, err := io.ReadAll(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer normalized image: %w", err)
	}

	photoID := uuid.New().String()

	// Sharding path: photos/ab/UUID.jpg
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s.jpg", shard, photoID)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(normBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(normBytes), 320, 320); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		UserID:        userID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		Size:          int64(len(normBytes)),
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best effort storage cleanup; the DB row is the source of truth.
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}
