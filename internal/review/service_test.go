package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewheels/rental-backend/internal/booking"
)

const (
	renterID     = "11111111-1111-1111-1111-111111111111"
	strangerID   = "55555555-5555-5555-5555-555555555555"
	bookingID    = "66666666-6666-6666-6666-666666666666"
	theVehicleID = "33333333-3333-3333-3333-333333333333"
)

type fakeRepo struct {
	reviews   map[string]*Review
	byBooking map[string]bool
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: map[string]*Review{}, byBooking: map[string]bool{}}
}

func (r *fakeRepo) Create(ctx context.Context, rv *Review) error {
	if r.byBooking[rv.BookingID] {
		return ErrAlreadyReviewed
	}
	r.nextID++
	rv.ID = fmt.Sprintf("review-%d", r.nextID)
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	cp := *rv
	r.reviews[rv.ID] = &cp
	r.byBooking[rv.BookingID] = true
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	var result []*Review
	for _, rv := range r.reviews {
		if filter.VehicleID != "" && rv.VehicleID != filter.VehicleID {
			continue
		}
		cp := *rv
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(ctx context.Context, rv *Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return ErrNotFound
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	rv, ok := r.reviews[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byBooking, rv.BookingID)
	delete(r.reviews, id)
	return nil
}

type fakeBookingService struct {
	status booking.Status
}

func (s *fakeBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	panic("not used")
}

func (s *fakeBookingService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	if id != bookingID {
		return nil, booking.ErrNotFound
	}
	return &booking.Booking{
		ID:        bookingID,
		VehicleID: theVehicleID,
		UserID:    renterID,
		Status:    s.status,
	}, nil
}

func (s *fakeBookingService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	panic("not used")
}

func (s *fakeBookingService) UpdateStatus(ctx context.Context, id string, status booking.Status, updaterUserID string) (*booking.Booking, error) {
	panic("not used")
}

func (s *fakeBookingService) ExtendTo(ctx context.Context, id string, newEnd time.Time, extraKm int) error {
	panic("not used")
}

func newFixture() (Service, *fakeBookingService) {
	bookings := &fakeBookingService{status: booking.StatusCompleted}
	return NewService(newFakeRepo(), bookings), bookings
}

func TestCreateReview(t *testing.T) {
	svc, _ := newFixture()

	rv, err := svc.Create(context.Background(), CreateRequest{
		BookingID: bookingID,
		UserID:    renterID,
		Rating:    4,
		Comment:   "smooth ride, minor scratches",
	})
	require.NoError(t, err)

	assert.Equal(t, theVehicleID, rv.VehicleID)
	require.NotNil(t, rv.Comment)
	assert.Equal(t, "smooth ride, minor scratches", *rv.Comment)
}

func TestCreateReviewOncePerBooking(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	req := CreateRequest{BookingID: bookingID, UserID: renterID, Rating: 5}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewGuards(t *testing.T) {
	svc, bookings := newFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{BookingID: bookingID, UserID: renterID, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, CreateRequest{BookingID: bookingID, UserID: renterID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, CreateRequest{BookingID: bookingID, UserID: strangerID, Rating: 4})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	bookings.status = booking.StatusActive
	_, err = svc.Create(ctx, CreateRequest{BookingID: bookingID, UserID: renterID, Rating: 4})
	assert.ErrorIs(t, err, ErrBookingNotEnded)

	_, err = svc.Create(ctx, CreateRequest{BookingID: "77777777-7777-7777-7777-777777777777", UserID: renterID, Rating: 4})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	rv, err := svc.Create(ctx, CreateRequest{BookingID: bookingID, UserID: renterID, Rating: 3})
	require.NoError(t, err)

	newRating := 5
	_, err = svc.Update(ctx, rv.ID, UpdateRequest{Rating: &newRating}, strangerID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, rv.ID, UpdateRequest{Rating: &newRating}, renterID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}
