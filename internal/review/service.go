package review

import (
	"context"
	"errors"
	"strings"

	"github.com/hirewheels/rental-backend/internal/booking"
)

type CreateRequest struct {
	BookingID string
	UserID    string
	Rating    int
	Comment   string
}

type UpdateRequest struct {
	Rating  *int
	Comment *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Review, error)
	Delete(ctx context.Context, id string, deleterUserID string) error
}

type service struct {
	repo           Repository
	bookingService booking.Service
}

func NewService(repo Repository, bookingService booking.Service) Service {
	return &service{repo: repo, bookingService: bookingService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookingService.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	// Only the renter may review, and only after the booking completed.
	if b.UserID != req.UserID {
		return nil, ErrPermissionDenied
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrBookingNotEnded
	}

	rv := &Review{
		BookingID: req.BookingID,
		VehicleID: b.VehicleID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   optionalComment(req.Comment),
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = optionalComment(*req.Comment)
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != deleterUserID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func optionalComment(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
