package extension

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewheels/rental-backend/internal/booking"
	"github.com/hirewheels/rental-backend/internal/payment"
	"github.com/hirewheels/rental-backend/internal/vehicle"
)

// ---- fakes ----

type fakeRepo struct {
	nextID   int
	requests map[string]*Request
	inFlight map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		requests: make(map[string]*Request),
		inFlight: make(map[string]bool),
	}
}

func (f *fakeRepo) Create(ctx context.Context, r *Request) error {
	f.nextID++
	r.ID = fmt.Sprintf("ext-%d", f.nextID)
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Request, int, error) {
	var out []*Request
	for _, r := range f.requests {
		if filter.BookingID != "" && r.BookingID != filter.BookingID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateRequestedEnd(ctx context.Context, r *Request) error {
	stored, ok := f.requests[r.ID]
	if !ok {
		return ErrNotFound
	}
	stored.RequestedEnd = r.RequestedEnd
	stored.Quote = r.Quote
	stored.Status = r.Status
	stored.CheckToken = r.CheckToken
	stored.NextAvailable = nil
	return nil
}

func (f *fakeRepo) ApplyAvailability(ctx context.Context, id string, token int64, status FlowState, nextAvailable *time.Time) (bool, error) {
	stored, ok := f.requests[id]
	if !ok {
		return false, nil
	}
	if stored.CheckToken != token || stored.Status != StatePendingAvailability {
		return false, nil
	}
	stored.Status = status
	stored.NextAvailable = nextAvailable
	return true, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status FlowState) error {
	stored, ok := f.requests[id]
	if !ok {
		return ErrNotFound
	}
	stored.Status = status
	return nil
}

func (f *fakeRepo) BeginPayment(ctx context.Context, id string) (bool, error) {
	stored, ok := f.requests[id]
	if !ok || stored.Status != StatePaymentRequired {
		return false, nil
	}
	if f.inFlight[id] {
		return false, nil
	}
	f.inFlight[id] = true
	return true, nil
}

func (f *fakeRepo) FinishPayment(ctx context.Context, id string, status FlowState, paymentID *string) error {
	stored, ok := f.requests[id]
	if !ok {
		return ErrNotFound
	}
	f.inFlight[id] = false
	stored.Status = status
	stored.PaymentID = paymentID
	return nil
}

type fakeBookingService struct {
	bookings map[string]*booking.Booking
	extends  []struct {
		ID      string
		NewEnd  time.Time
		ExtraKm int
	}
}

func (f *fakeBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	panic("not used")
}

func (f *fakeBookingService) UpdateStatus(ctx context.Context, id string, status booking.Status, updaterUserID string) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) ExtendTo(ctx context.Context, id string, newEnd time.Time, extraKm int) error {
	b, ok := f.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.EndTime = newEnd
	b.KmLimit += extraKm
	f.extends = append(f.extends, struct {
		ID      string
		NewEnd  time.Time
		ExtraKm int
	}{id, newEnd, extraKm})
	return nil
}

type fakeVehicleService struct {
	vehicles map[string]*vehicle.Vehicle
}

func (f *fakeVehicleService) Create(ctx context.Context, req vehicle.CreateRequest) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (f *fakeVehicleService) GetByID(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, vehicle.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVehicleService) List(ctx context.Context, filter vehicle.Filter) ([]*vehicle.Vehicle, int, error) {
	panic("not used")
}

func (f *fakeVehicleService) Update(ctx context.Context, id string, req vehicle.UpdateRequest, updaterUserID string) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (f *fakeVehicleService) Delete(ctx context.Context, id string, deleterUserID string) error {
	panic("not used")
}

type fakePaymentService struct {
	declineNext bool
	charges     []int64
}

func (f *fakePaymentService) AddMethod(ctx context.Context, req payment.CreateMethodRequest) (*payment.Method, error) {
	panic("not used")
}

func (f *fakePaymentService) ListMethods(ctx context.Context, userID string) ([]*payment.Method, error) {
	panic("not used")
}

func (f *fakePaymentService) RemoveMethod(ctx context.Context, id, userID string) error {
	panic("not used")
}

func (f *fakePaymentService) SetDefault(ctx context.Context, id, userID string) error {
	panic("not used")
}

func (f *fakePaymentService) Charge(ctx context.Context, userID, methodID string, amount int64) (string, error) {
	if f.declineNext {
		f.declineNext = false
		return "", payment.ErrChargeDeclined
	}
	f.charges = append(f.charges, amount)
	return "charge-1", nil
}

// scriptedChecker returns its queued outcomes in order and repeats the
// last one when the queue is exhausted.
type scriptedChecker struct {
	results []Result
	errs    []error
	calls   int
}

func (c *scriptedChecker) CheckAvailability(ctx context.Context, vehicleID string, windowStart, windowEnd time.Time) (Result, error) {
	i := c.calls
	if i >= len(c.results) {
		i = len(c.results) - 1
	}
	c.calls++
	if c.errs != nil && c.errs[i] != nil {
		return Result{}, c.errs[i]
	}
	return c.results[i], nil
}

// ---- fixtures ----

const (
	testUserID    = "user-1"
	testBookingID = "booking-1"
	testVehicleID = "vehicle-1"
)

func testCurrentEnd() time.Time {
	return time.Date(2025, 1, 17, 10, 0, 0, 0, time.UTC)
}

func newFixture(checker Checker) (Service, *fakeRepo, *fakeBookingService, *fakePaymentService) {
	repo := newFakeRepo()

	bookings := &fakeBookingService{bookings: map[string]*booking.Booking{
		testBookingID: {
			ID:        testBookingID,
			VehicleID: testVehicleID,
			UserID:    testUserID,
			StartTime: testCurrentEnd().Add(-48 * time.Hour),
			EndTime:   testCurrentEnd(),
			KmLimit:   300,
			Status:    booking.StatusActive,
		},
	}}
	vehicles := &fakeVehicleService{vehicles: map[string]*vehicle.Vehicle{
		testVehicleID: {
			ID:                 testVehicleID,
			OwnerID:            "owner-1",
			Name:               "Swift DZire",
			BasePricePerDay:    2500,
			HourlyRate:         125,
			AdditionalKmPerDay: 150,
			IsAutoApproval:     true,
			IsActive:           true,
		},
	}}
	payments := &fakePaymentService{}

	svc := NewService(repo, bookings, vehicles, payments, checker, Config{})
	return svc, repo, bookings, payments
}

// ---- tests ----

func TestServiceQuote(t *testing.T) {
	svc, _, _, _ := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	q, err := svc.Quote(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(52*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(6638), q.Total)

	_, err = svc.Quote(context.Background(), testBookingID, "someone-else", testCurrentEnd().Add(time.Hour))
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Quote(context.Background(), testBookingID, testUserID, testCurrentEnd())
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestServiceStartAvailable(t *testing.T) {
	svc, _, _, _ := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, r.Status)
	assert.Equal(t, int64(2500), r.Quote.BaseRental)
}

func TestServiceStartUnavailable(t *testing.T) {
	next := testCurrentEnd().Add(72 * time.Hour)
	svc, _, _, _ := newFixture(&scriptedChecker{results: []Result{{Available: false, NextAvailable: &next}}})

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StateUnavailable, r.Status)
	require.NotNil(t, r.NextAvailable)
	assert.Equal(t, next, *r.NextAvailable)
}

func TestServiceStartCheckerFailureStaysPending(t *testing.T) {
	checker := &scriptedChecker{
		results: []Result{{}, {Available: true}},
		errs:    []error{errors.New("transport down"), nil},
	}
	svc, _, _, _ := newFixture(checker)

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatePendingAvailability, r.Status)

	// Retry resolves the same request without a date change.
	r, err = svc.Recheck(context.Background(), r.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, r.Status)
}

func TestServiceStaleCheckIsDiscarded(t *testing.T) {
	checker := &scriptedChecker{
		results: []Result{{}, {Available: true}},
		errs:    []error{errors.New("slow"), nil},
	}
	svc, repo, _, _ := newFixture(checker)

	// First check fails, request stays pending on token 1.
	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	firstToken := r.CheckToken

	// User picks a new date; the flow moves to token 2 and the second
	// check resolves available.
	r, err = svc.ChangeRequestedEnd(context.Background(), r.ID, testUserID, testCurrentEnd().Add(48*time.Hour))
	require.NoError(t, err)
	require.Greater(t, r.CheckToken, firstToken)
	require.Equal(t, StateAwaitingConfirmation, r.Status)

	// The first check finally resolves "unavailable"; it must not
	// change state derived from the newer request.
	applied, err := repo.ApplyAvailability(context.Background(), r.ID, firstToken, StateUnavailable, nil)
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, stored.Status)
}

func TestServiceAutoApprovalPaymentConfirms(t *testing.T) {
	svc, _, bookings, payments := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	requestedEnd := testCurrentEnd().Add(52*time.Hour + 30*time.Minute)
	r, err := svc.Start(context.Background(), testBookingID, testUserID, requestedEnd)
	require.NoError(t, err)

	r, err = svc.RequestExtension(context.Background(), r.ID, testUserID)
	require.NoError(t, err)
	require.Equal(t, StatePaymentRequired, r.Status)

	r, err = svc.SubmitPayment(context.Background(), r.ID, testUserID, "method-1")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, r.Status)
	require.NotNil(t, r.PaymentID)

	// The exact quoted total was charged.
	require.Len(t, payments.charges, 1)
	assert.Equal(t, int64(6638), payments.charges[0])

	// The booking was pushed out and the partial day granted a full
	// day's KM allowance: 150 * (2 + 1).
	require.Len(t, bookings.extends, 1)
	assert.Equal(t, requestedEnd, bookings.extends[0].NewEnd)
	assert.Equal(t, 450, bookings.extends[0].ExtraKm)

	b, err := bookings.GetByID(context.Background(), testBookingID)
	require.NoError(t, err)
	assert.Equal(t, requestedEnd, b.EndTime)
	assert.Equal(t, 750, b.KmLimit)
}

func TestServiceManualApprovalSkipsPayment(t *testing.T) {
	svc, _, bookings, payments := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	// Owner reviews requests manually for this listing.
	fixtureVehicles := svc.(*service).vehicleService.(*fakeVehicleService)
	fixtureVehicles.vehicles[testVehicleID].IsAutoApproval = false

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)

	r, err = svc.RequestExtension(context.Background(), r.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, StateManualRequestSent, r.Status)

	// No payment was collected and the booking is untouched.
	assert.Empty(t, payments.charges)
	assert.Empty(t, bookings.extends)

	_, err = svc.SubmitPayment(context.Background(), r.ID, testUserID, "method-1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestServicePaymentFailureIsRetryable(t *testing.T) {
	svc, _, bookings, payments := newFixture(&scriptedChecker{results: []Result{{Available: true}}})
	payments.declineNext = true

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	r, err = svc.RequestExtension(context.Background(), r.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.SubmitPayment(context.Background(), r.ID, testUserID, "method-1")
	require.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, bookings.extends)

	stored, err := svc.GetByID(context.Background(), r.ID, testUserID)
	require.NoError(t, err)
	require.Equal(t, StatePaymentRequired, stored.Status)

	// Retry succeeds.
	stored, err = svc.SubmitPayment(context.Background(), r.ID, testUserID, "method-1")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, stored.Status)
}

func TestServiceSinglePaymentInFlight(t *testing.T) {
	svc, repo, _, _ := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)
	r, err = svc.RequestExtension(context.Background(), r.ID, testUserID)
	require.NoError(t, err)

	// Another submission already holds the payment slot.
	claimed, err := repo.BeginPayment(context.Background(), r.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = svc.SubmitPayment(context.Background(), r.ID, testUserID, "method-1")
	require.ErrorIs(t, err, ErrPaymentInFlight)
}

func TestServiceRejectsNonActiveBooking(t *testing.T) {
	svc, _, bookings, _ := newFixture(&scriptedChecker{results: []Result{{Available: true}}})
	bookings.bookings[testBookingID].Status = booking.StatusCompleted

	_, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.ErrorIs(t, err, ErrBookingNotActive)
}

func TestServiceRejectsForeignRequest(t *testing.T) {
	svc, _, _, _ := newFixture(&scriptedChecker{results: []Result{{Available: true}}})

	r, err := svc.Start(context.Background(), testBookingID, testUserID, testCurrentEnd().Add(24*time.Hour))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), r.ID, "someone-else")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.RequestExtension(context.Background(), r.ID, "someone-else")
	require.ErrorIs(t, err, ErrPermissionDenied)
}
