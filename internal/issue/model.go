package issue

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("issue not found")
	ErrInvalidKind         = errors.New("invalid issue kind")
	ErrInvalidStatus       = errors.New("invalid issue status")
	ErrDescriptionRequired = errors.New("description is required")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPermissionDenied    = errors.New("permission denied")
)

// Kind classifies what went wrong during a rental.
type Kind string

const (
	KindBreakdown   Kind = "breakdown"
	KindDamage      Kind = "damage"
	KindCleanliness Kind = "cleanliness"
	KindOther       Kind = "other"
)

// Status tracks an issue through its lifecycle.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Issue is a problem a renter reports against one of their bookings.
// Photos are referenced by ID; the photo module owns the content.
type Issue struct {
	ID          string
	BookingID   string
	VehicleID   string
	ReporterID  string
	Kind        Kind
	Description string
	PhotoIDs    []string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing issues.
type Filter struct {
	BookingID  string
	VehicleID  string
	ReporterID string
	Status     string
	Page       int
	PageSize   int
}
