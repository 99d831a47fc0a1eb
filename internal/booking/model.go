package booking

import (
	"net/http"
	"time"

	"github.com/hirewheels/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "vehicle is already booked for this window")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrVehicleNotFound  = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrVehicleInactive  = apperror.New(http.StatusBadRequest, "vehicle is not available for booking")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrNotExtendable    = apperror.New(http.StatusBadRequest, "booking cannot be extended in its current status")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking represents one rental of a vehicle for a time window.
// KmLimit is the total KM allowance for the rental; extensions grow it.
type Booking struct {
	ID          string
	VehicleID   string
	VehicleName string
	UserID      string
	UserName    string
	StartTime   time.Time
	EndTime     time.Time
	KmLimit     int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	UserID    string
	VehicleID string
	Status    string
	StartTime *time.Time // Filter bookings ending after this time
	EndTime   *time.Time // Filter bookings starting before this time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
