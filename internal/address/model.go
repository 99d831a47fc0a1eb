package address

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("address not found")
	ErrLabelRequired    = errors.New("label is required")
	ErrLine1Required    = errors.New("address line is required")
	ErrCityRequired     = errors.New("city is required")
	ErrPermissionDenied = errors.New("permission denied")
)

// Address is a saved pickup or drop-off location belonging to a user.
type Address struct {
	ID        string
	UserID    string
	Label     string // e.g. "Home", "Office"
	Line1     string
	Line2     *string
	City      string
	Pincode   string
	Longitude float64
	Latitude  float64
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
