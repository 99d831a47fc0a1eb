package issue

import (
	"context"
	"errors"
	"strings"

	"github.com/hirewheels/rental-backend/internal/booking"
	"github.com/hirewheels/rental-backend/internal/vehicle"
)

type CreateRequest struct {
	BookingID   string
	ReporterID  string
	Kind        string
	Description string
	PhotoIDs    []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Issue, error)
	GetByID(ctx context.Context, id string, requesterID string) (*Issue, error)
	List(ctx context.Context, filter Filter) ([]*Issue, int, error)
	// UpdateStatus is restricted to the vehicle's owner.
	UpdateStatus(ctx context.Context, id string, status Status, updaterUserID string) (*Issue, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
	vehicleService vehicle.Service
}

func NewService(repo Repository, bookingService booking.Service, vehicleService vehicle.Service) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
		vehicleService: vehicleService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Issue, error) {
	kind := Kind(req.Kind)
	switch kind {
	case KindBreakdown, KindDamage, KindCleanliness, KindOther:
	default:
		return nil, ErrInvalidKind
	}

	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	b, err := s.bookingService.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != req.ReporterID {
		return nil, ErrPermissionDenied
	}

	iss := &Issue{
		BookingID:   req.BookingID,
		VehicleID:   b.VehicleID,
		ReporterID:  req.ReporterID,
		Kind:        kind,
		Description: strings.TrimSpace(req.Description),
		PhotoIDs:    req.PhotoIDs,
		Status:      StatusOpen,
	}

	if err := s.repo.Create(ctx, iss); err != nil {
		return nil, err
	}
	return iss, nil
}

func (s *service) GetByID(ctx context.Context, id string, requesterID string) (*Issue, error) {
	iss, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iss.ReporterID != requesterID {
		// The vehicle's owner may also view issues on their listing.
		v, err := s.vehicleService.GetByID(ctx, iss.VehicleID)
		if err != nil || v.OwnerID != requesterID {
			return nil, ErrPermissionDenied
		}
	}
	return iss, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Issue, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, updaterUserID string) (*Issue, error) {
	switch status {
	case StatusOpen, StatusInProgress, StatusResolved:
	default:
		return nil, ErrInvalidStatus
	}

	iss, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicleService.GetByID(ctx, iss.VehicleID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	iss.Status = status
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return iss, nil
}
