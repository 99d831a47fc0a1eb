package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("review not found")
	ErrAlreadyReviewed  = errors.New("booking has already been reviewed")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrBookingNotEnded  = errors.New("booking has not been completed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBookingNotFound  = errors.New("booking not found")
)

// Review is a renter's rating of a vehicle after a completed booking.
// At most one review exists per booking.
type Review struct {
	ID        string
	BookingID string
	VehicleID string
	UserID    string
	UserName  string
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing reviews.
type Filter struct {
	VehicleID string
	UserID    string
	Page      int
	PageSize  int
}
