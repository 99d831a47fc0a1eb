package extension

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewheels/rental-backend/internal/booking"
	"github.com/hirewheels/rental-backend/internal/payment"
	"github.com/hirewheels/rental-backend/internal/vehicle"
)

// Config holds the extension policy knobs.
type Config struct {
	// MaxExtensionDays bounds the extension window, inclusive.
	// Zero means DefaultMaxExtensionDays.
	MaxExtensionDays int
	// CheckTimeout bounds one availability check. Expiry is treated as
	// a recoverable checker failure, not as "unavailable".
	CheckTimeout time.Duration
}

type Service interface {
	// Quote prices an extension without creating a request.
	Quote(ctx context.Context, bookingID, userID string, requestedEnd time.Time) (*Quote, error)

	// Start creates an extension request and runs the first
	// availability check. If the check fails the request is returned in
	// pending_availability and the caller retries via Recheck.
	Start(ctx context.Context, bookingID, userID string, requestedEnd time.Time) (*Request, error)

	// ChangeRequestedEnd reprices the request for a new end time and
	// restarts the flow, superseding any in-flight check.
	ChangeRequestedEnd(ctx context.Context, id, userID string, requestedEnd time.Time) (*Request, error)

	// Recheck re-runs the availability check for a pending request.
	Recheck(ctx context.Context, id, userID string) (*Request, error)

	// RequestExtension confirms the extension, routing to payment
	// collection or to the owner's manual queue.
	RequestExtension(ctx context.Context, id, userID string) (*Request, error)

	// SubmitPayment charges the stored method for the quoted total and,
	// on success, applies the extension to the booking.
	SubmitPayment(ctx context.Context, id, userID, methodID string) (*Request, error)

	GetByID(ctx context.Context, id, userID string) (*Request, error)
	ListByBooking(ctx context.Context, bookingID, userID string, page, pageSize int) ([]*Request, int, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
	vehicleService vehicle.Service
	paymentService payment.Service
	checker        Checker
	cfg            Config
}

func NewService(
	repo Repository,
	bookingService booking.Service,
	vehicleService vehicle.Service,
	paymentService payment.Service,
	checker Checker,
	cfg Config,
) Service {
	if cfg.MaxExtensionDays <= 0 {
		cfg.MaxExtensionDays = DefaultMaxExtensionDays
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 5 * time.Second
	}
	return &service{
		repo:           repo,
		bookingService: bookingService,
		vehicleService: vehicleService,
		paymentService: paymentService,
		checker:        checker,
		cfg:            cfg,
	}
}

// loadExtendable fetches the booking and its vehicle and verifies the
// caller may extend it.
func (s *service) loadExtendable(ctx context.Context, bookingID, userID string) (*booking.Booking, *vehicle.Vehicle, error) {
	b, err := s.bookingService.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	if b.UserID != userID {
		return nil, nil, ErrPermissionDenied
	}
	if b.Status != booking.StatusActive {
		return nil, nil, ErrBookingNotActive
	}

	v, err := s.vehicleService.GetByID(ctx, b.VehicleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vehicle for booking: %w", err)
	}
	return b, v, nil
}

func (s *service) Quote(ctx context.Context, bookingID, userID string, requestedEnd time.Time) (*Quote, error) {
	b, v, err := s.loadExtendable(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	q, err := ComputeQuote(QuoteInput{
		CurrentEnd:       b.EndTime,
		RequestedEnd:     requestedEnd,
		BasePricePerDay:  v.BasePricePerDay,
		HourlyRate:       v.HourlyRate,
		MaxExtensionDays: s.cfg.MaxExtensionDays,
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *service) Start(ctx context.Context, bookingID, userID string, requestedEnd time.Time) (*Request, error) {
	b, v, err := s.loadExtendable(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	q, err := ComputeQuote(QuoteInput{
		CurrentEnd:       b.EndTime,
		RequestedEnd:     requestedEnd,
		BasePricePerDay:  v.BasePricePerDay,
		HourlyRate:       v.HourlyRate,
		MaxExtensionDays: s.cfg.MaxExtensionDays,
	})
	if err != nil {
		return nil, err
	}

	sess := NewSession()
	r := &Request{
		BookingID:    b.ID,
		UserID:       userID,
		VehicleID:    b.VehicleID,
		CurrentEnd:   b.EndTime,
		RequestedEnd: requestedEnd,
		Quote:        q,
		Status:       sess.State(),
		CheckToken:   sess.CheckToken(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create extension request: %w", err)
	}

	s.runAvailabilityCheck(ctx, r, sess.CheckToken())
	return r, nil
}

// runAvailabilityCheck performs one bounded availability check and
// records the outcome under the given token. A checker failure leaves
// the request pending (retryable) and is not an error of the caller's
// operation. Stale outcomes are discarded by the token guard.
func (s *service) runAvailabilityCheck(ctx context.Context, r *Request, token int64) {
	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	res, err := s.checker.CheckAvailability(checkCtx, r.VehicleID, r.CurrentEnd, r.RequestedEnd)
	if err != nil {
		// Recoverable: state stays pending_availability.
		return
	}

	status := StateAwaitingConfirmation
	if !res.Available {
		status = StateUnavailable
	}

	applied, err := s.repo.ApplyAvailability(ctx, r.ID, token, status, res.NextAvailable)
	if err != nil || !applied {
		// Superseded by a newer request or a storage failure; either
		// way this outcome must not be surfaced.
		return
	}

	r.Status = status
	r.NextAvailable = res.NextAvailable
}

func (s *service) ChangeRequestedEnd(ctx context.Context, id, userID string, requestedEnd time.Time) (*Request, error) {
	r, err := s.authorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	_, v, err := s.loadExtendable(ctx, r.BookingID, userID)
	if err != nil {
		return nil, err
	}

	q, err := ComputeQuote(QuoteInput{
		CurrentEnd:       r.CurrentEnd,
		RequestedEnd:     requestedEnd,
		BasePricePerDay:  v.BasePricePerDay,
		HourlyRate:       v.HourlyRate,
		MaxExtensionDays: s.cfg.MaxExtensionDays,
	})
	if err != nil {
		return nil, err
	}

	sess := ResumeSession(r.Status, r.CheckToken)
	token, err := sess.ChangeRequestedEnd()
	if err != nil {
		return nil, err
	}

	r.RequestedEnd = requestedEnd
	r.Quote = q
	r.Status = sess.State()
	r.CheckToken = token
	r.NextAvailable = nil

	if err := s.repo.UpdateRequestedEnd(ctx, r); err != nil {
		return nil, err
	}

	s.runAvailabilityCheck(ctx, r, token)
	return r, nil
}

func (s *service) Recheck(ctx context.Context, id, userID string) (*Request, error) {
	r, err := s.authorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatePendingAvailability {
		return nil, ErrInvalidTransition
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	res, err := s.checker.CheckAvailability(checkCtx, r.VehicleID, r.CurrentEnd, r.RequestedEnd)
	if err != nil {
		return nil, ErrCheckFailed
	}

	status := StateAwaitingConfirmation
	if !res.Available {
		status = StateUnavailable
	}

	applied, err := s.repo.ApplyAvailability(ctx, r.ID, r.CheckToken, status, res.NextAvailable)
	if err != nil {
		return nil, err
	}
	if applied {
		r.Status = status
		r.NextAvailable = res.NextAvailable
	}
	return r, nil
}

func (s *service) RequestExtension(ctx context.Context, id, userID string) (*Request, error) {
	r, err := s.authorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicleService.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	sess := ResumeSession(r.Status, r.CheckToken)
	if err := sess.RequestExtension(v.IsAutoApproval); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, r.ID, sess.State()); err != nil {
		return nil, err
	}
	r.Status = sess.State()
	return r, nil
}

func (s *service) SubmitPayment(ctx context.Context, id, userID, methodID string) (*Request, error) {
	r, err := s.authorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatePaymentRequired {
		return nil, ErrInvalidTransition
	}

	// Claim the single payment slot before touching the gateway.
	claimed, err := s.repo.BeginPayment(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrPaymentInFlight
	}

	chargeID, err := s.paymentService.Charge(ctx, userID, methodID, r.Quote.Total)
	if err != nil {
		// Declined or gateway failure: back to payment_required,
		// retryable, no automatic retry.
		if finishErr := s.repo.FinishPayment(ctx, r.ID, StatePaymentRequired, nil); finishErr != nil {
			return nil, finishErr
		}
		if errors.Is(err, payment.ErrMethodNotFound) {
			return nil, err
		}
		return nil, ErrPaymentFailed
	}

	v, err := s.vehicleService.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	extraKm := ExtraKmAllowance(r.Quote, v.AdditionalKmPerDay)
	if err := s.bookingService.ExtendTo(ctx, r.BookingID, r.RequestedEnd, extraKm); err != nil {
		// The charge went through but the booking update did not;
		// keep the request payable so support can reconcile.
		if finishErr := s.repo.FinishPayment(ctx, r.ID, StatePaymentRequired, &chargeID); finishErr != nil {
			return nil, finishErr
		}
		return nil, fmt.Errorf("failed to apply extension to booking: %w", err)
	}

	if err := s.repo.FinishPayment(ctx, r.ID, StateConfirmed, &chargeID); err != nil {
		return nil, err
	}

	r.Status = StateConfirmed
	r.PaymentID = &chargeID
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id, userID string) (*Request, error) {
	return s.authorized(ctx, id, userID)
}

func (s *service) ListByBooking(ctx context.Context, bookingID, userID string, page, pageSize int) ([]*Request, int, error) {
	b, err := s.bookingService.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, 0, ErrBookingNotFound
		}
		return nil, 0, err
	}
	if b.UserID != userID {
		return nil, 0, ErrPermissionDenied
	}

	return s.repo.List(ctx, Filter{
		BookingID: bookingID,
		Page:      page,
		PageSize:  pageSize,
	})
}

func (s *service) authorized(ctx context.Context, id, userID string) (*Request, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return r, nil
}
