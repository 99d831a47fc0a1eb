package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewheels/rental-backend/internal/vehicle"
)

const (
	testRenterID  = "11111111-1111-1111-1111-111111111111"
	testOwnerID   = "22222222-2222-2222-2222-222222222222"
	testVehicleID = "33333333-3333-3333-3333-333333333333"
)

type fakeRepo struct {
	bookings map[string]*Booking
	nextID   int
	overlap  bool

	extendCalls []struct {
		id      string
		newEnd  time.Time
		extraKm int
	}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*Booking{}}
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	var result []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) ExtendTo(ctx context.Context, id string, newEnd time.Time, extraKm int) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.EndTime = newEnd
	b.KmLimit += extraKm
	r.extendCalls = append(r.extendCalls, struct {
		id      string
		newEnd  time.Time
		extraKm int
	}{id, newEnd, extraKm})
	return nil
}

func (r *fakeRepo) HasOverlap(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return r.overlap, nil
}

type fakeVehicleService struct {
	vehicles map[string]*vehicle.Vehicle
}

func (s *fakeVehicleService) Create(ctx context.Context, req vehicle.CreateRequest) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (s *fakeVehicleService) GetByID(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, vehicle.ErrNotFound
	}
	return v, nil
}

func (s *fakeVehicleService) List(ctx context.Context, filter vehicle.Filter) ([]*vehicle.Vehicle, int, error) {
	panic("not used")
}

func (s *fakeVehicleService) Update(ctx context.Context, id string, req vehicle.UpdateRequest, updaterUserID string) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (s *fakeVehicleService) Delete(ctx context.Context, id string, deleterUserID string) error {
	panic("not used")
}

func newFixture(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	vehicles := &fakeVehicleService{vehicles: map[string]*vehicle.Vehicle{
		testVehicleID: {
			ID:                 testVehicleID,
			OwnerID:            testOwnerID,
			Name:               "Honda City",
			Category:           "sedan",
			BasePricePerDay:    2500,
			HourlyRate:         125,
			AdditionalKmPerDay: 150,
			IsActive:           true,
		},
	}}

	return NewService(repo, vehicles), repo
}

func futureWindow(d time.Duration) (time.Time, time.Time) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	return start, start.Add(d)
}

func TestChargeableDays(t *testing.T) {
	base := time.Date(2025, 1, 17, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dur  time.Duration
		want int
	}{
		{"exactly one day", 24 * time.Hour, 1},
		{"exactly two days", 48 * time.Hour, 2},
		{"partial day rounds up", 52*time.Hour + 30*time.Minute, 3},
		{"one hour counts as a day", time.Hour, 1},
		{"partial hour rounds to a day", time.Minute, 1},
		{"just past two days", 48*time.Hour + time.Second, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chargeableDays(base, base.Add(tt.dur)))
		})
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _ := newFixture(t)

	start, end := futureWindow(52*time.Hour + 30*time.Minute)
	b, err := svc.Create(context.Background(), CreateRequest{
		UserID:    testRenterID,
		VehicleID: testVehicleID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	// 52.5h rounds to 3 chargeable days at 150 km/day.
	assert.Equal(t, 450, b.KmLimit)
}

func TestCreateBookingRejectsBadWindows(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	start, end := futureWindow(24 * time.Hour)

	_, err := svc.Create(ctx, CreateRequest{
		UserID: testRenterID, VehicleID: testVehicleID,
		StartTime: end, EndTime: start,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Create(ctx, CreateRequest{
		UserID: testRenterID, VehicleID: testVehicleID,
		StartTime: time.Now().UTC().Add(-time.Hour), EndTime: end,
	})
	assert.ErrorIs(t, err, ErrStartTimePast)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, repo := newFixture(t)
	repo.overlap = true

	start, end := futureWindow(24 * time.Hour)
	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: testRenterID, VehicleID: testVehicleID,
		StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateBookingRejectsUnknownVehicle(t *testing.T) {
	svc, _ := newFixture(t)

	start, end := futureWindow(24 * time.Hour)
	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: testRenterID, VehicleID: "44444444-4444-4444-4444-444444444444",
		StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func createTestBooking(t *testing.T, svc Service) *Booking {
	t.Helper()
	start, end := futureWindow(48 * time.Hour)
	b, err := svc.Create(context.Background(), CreateRequest{
		UserID:    testRenterID,
		VehicleID: testVehicleID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return b
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	b := createTestBooking(t, svc)

	// Owner activates a pending booking.
	b2, err := svc.UpdateStatus(ctx, b.ID, StatusActive, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, b2.Status)

	// Owner completes an active booking.
	b3, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b3.Status)

	// Completed bookings cannot move again.
	_, err = svc.UpdateStatus(ctx, b.ID, StatusCancelled, testRenterID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusRenterMayOnlyCancel(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()
	b := createTestBooking(t, svc)

	_, err := svc.UpdateStatus(ctx, b.ID, StatusActive, testRenterID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	b2, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, testRenterID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b2.Status)
}

func TestUpdateStatusRejectsStranger(t *testing.T) {
	svc, _ := newFixture(t)
	b := createTestBooking(t, svc)

	_, err := svc.UpdateStatus(context.Background(), b.ID, StatusCancelled, "55555555-5555-5555-5555-555555555555")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExtendTo(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()
	b := createTestBooking(t, svc)

	// Only active bookings can be extended.
	err := svc.ExtendTo(ctx, b.ID, b.EndTime.Add(24*time.Hour), 150)
	assert.ErrorIs(t, err, ErrNotExtendable)

	_, err = svc.UpdateStatus(ctx, b.ID, StatusActive, testOwnerID)
	require.NoError(t, err)

	// New end must be after the current end.
	err = svc.ExtendTo(ctx, b.ID, b.EndTime.Add(-time.Hour), 150)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	newEnd := b.EndTime.Add(24 * time.Hour)
	require.NoError(t, svc.ExtendTo(ctx, b.ID, newEnd, 150))

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(newEnd))
	assert.Equal(t, b.KmLimit+150, got.KmLimit)
	require.Len(t, repo.extendCalls, 1)
}
