package extension

import (
	"net/http"
	"time"

	"github.com/hirewheels/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "extension request not found")
	ErrInvalidRange         = apperror.New(http.StatusBadRequest, "requested end time must be after the current end time")
	ErrMaxExtensionExceeded = apperror.New(http.StatusBadRequest, "requested end time exceeds the maximum extension window")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "operation is not allowed in the current state")
	ErrPaymentInFlight      = apperror.New(http.StatusConflict, "a payment for this request is already being processed")
	ErrBookingNotActive     = apperror.New(http.StatusBadRequest, "only active bookings can be extended")
	ErrBookingNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrCheckFailed          = apperror.New(http.StatusServiceUnavailable, "availability check failed, please retry")
	ErrPaymentFailed        = apperror.New(http.StatusBadGateway, "payment was declined, please retry")
)

// Request is a persisted booking-extension attempt together with its
// quote snapshot and approval-flow state.
type Request struct {
	ID            string
	BookingID     string
	UserID        string
	VehicleID     string
	CurrentEnd    time.Time
	RequestedEnd  time.Time
	Quote         Quote
	Status        FlowState
	CheckToken    int64
	NextAvailable *time.Time
	PaymentID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing extension requests.
type Filter struct {
	BookingID string
	UserID    string
	Status    string
	Page      int
	PageSize  int
}
