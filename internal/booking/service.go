package booking

import (
	"context"
	"errors"
	"time"

	"github.com/hirewheels/rental-backend/internal/vehicle"
)

type CreateRequest struct {
	UserID    string
	VehicleID string
	StartTime time.Time
	EndTime   time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus moves a booking through its lifecycle. Renters may
	// only cancel; the vehicle owner may activate and complete.
	UpdateStatus(ctx context.Context, id string, status Status, updaterUserID string) (*Booking, error)

	// ExtendTo pushes the booking's end time out and grows its KM
	// allowance. Called only from the extension flow once payment (or
	// owner approval) has gone through; it re-validates nothing about
	// availability because the extension flow already has.
	ExtendTo(ctx context.Context, id string, newEnd time.Time, extraKm int) error
}

type service struct {
	repo           Repository
	vehicleService vehicle.Service
}

func NewService(repo Repository, vehicleService vehicle.Service) Service {
	return &service{
		repo:           repo,
		vehicleService: vehicleService,
	}
}

// chargeableDays counts whole days in the window, rounding any partial
// day up. The KM allowance follows the same round-in-the-platform's-
// favor policy as hourly billing.
func chargeableDays(start, end time.Time) int {
	diff := end.Sub(start)
	totalHours := int64(diff / time.Hour)
	if diff%time.Hour > 0 {
		totalHours++
	}
	days := int(totalHours / 24)
	if totalHours%24 > 0 {
		days++
	}
	return days
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	v, err := s.vehicleService.GetByID(ctx, req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			return nil, ErrVehicleNotFound
		default:
			return nil, err
		}
	}
	if !v.IsActive {
		return nil, ErrVehicleInactive
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, req.VehicleID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		VehicleID: req.VehicleID,
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		KmLimit:   v.AdditionalKmPerDay * chargeableDays(req.StartTime, req.EndTime),
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, updaterUserID string) (*Booking, error) {
	if status != StatusActive && status != StatusCompleted && status != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isRenter := b.UserID == updaterUserID
	isOwner := false
	if !isRenter {
		v, err := s.vehicleService.GetByID(ctx, b.VehicleID)
		if err != nil {
			return nil, err
		}
		isOwner = v.OwnerID == updaterUserID
	}
	if !isRenter && !isOwner {
		return nil, ErrPermissionDenied
	}

	// Renters can only cancel; lifecycle moves belong to the owner.
	if isRenter && status != StatusCancelled {
		return nil, ErrPermissionDenied
	}

	switch status {
	case StatusActive:
		if b.Status != StatusPending {
			return nil, ErrInvalidStatus
		}
	case StatusCompleted:
		if b.Status != StatusActive {
			return nil, ErrInvalidStatus
		}
	case StatusCancelled:
		if b.Status != StatusPending && b.Status != StatusActive {
			return nil, ErrInvalidStatus
		}
	}

	b.Status = status
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ExtendTo(ctx context.Context, id string, newEnd time.Time, extraKm int) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != StatusActive {
		return ErrNotExtendable
	}
	if !newEnd.After(b.EndTime) {
		return ErrInvalidTimeRange
	}
	return s.repo.ExtendTo(ctx, id, newEnd, extraKm)
}
