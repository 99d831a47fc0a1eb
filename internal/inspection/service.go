package inspection

import (
	"context"
	"errors"
	"strings"

	"github.com/hirewheels/rental-backend/internal/booking"
)

type CreateRequest struct {
	BookingID   string
	InspectorID string
	Phase       string
	OdometerKm  int
	FuelPercent int
	Sections    []Section
	PhotoIDs    []string
	Notes       string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Inspection, error)
	ListByBooking(ctx context.Context, bookingID string, requesterID string) ([]*Inspection, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
}

func NewService(repo Repository, bookingService booking.Service) Service {
	return &service{repo: repo, bookingService: bookingService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Inspection, error) {
	phase := Phase(req.Phase)
	if phase != PhasePickup && phase != PhaseReturn {
		return nil, ErrInvalidPhase
	}
	if req.OdometerKm < 0 {
		return nil, ErrInvalidOdometer
	}
	if req.FuelPercent < 0 || req.FuelPercent > 100 {
		return nil, ErrInvalidFuel
	}
	for _, sec := range req.Sections {
		switch sec.Condition {
		case ConditionGood, ConditionScuffed, ConditionDamaged:
		default:
			return nil, ErrInvalidCondition
		}
	}

	b, err := s.bookingService.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != req.InspectorID {
		return nil, ErrPermissionDenied
	}

	// A return reading below the pickup reading is a data entry error.
	if phase == PhaseReturn {
		if pickup, err := s.repo.GetByBookingAndPhase(ctx, req.BookingID, PhasePickup); err == nil {
			if req.OdometerKm < pickup.OdometerKm {
				return nil, ErrOdometerRollback
			}
		}
	}

	ins := &Inspection{
		BookingID:   req.BookingID,
		VehicleID:   b.VehicleID,
		InspectorID: req.InspectorID,
		Phase:       phase,
		OdometerKm:  req.OdometerKm,
		FuelPercent: req.FuelPercent,
		Sections:    req.Sections,
		PhotoIDs:    req.PhotoIDs,
		Notes:       optionalNotes(req.Notes),
	}

	if err := s.repo.Create(ctx, ins); err != nil {
		return nil, err
	}
	return ins, nil
}

func (s *service) ListByBooking(ctx context.Context, bookingID string, requesterID string) ([]*Inspection, error) {
	b, err := s.bookingService.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}

	return s.repo.ListByBooking(ctx, bookingID)
}

func optionalNotes(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
