package favorite

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("favorite not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// Favorite marks a vehicle a user has saved. Adding the same vehicle
// twice is a no-op.
type Favorite struct {
	ID          string
	UserID      string
	VehicleID   string
	VehicleName string
	CreatedAt   time.Time
}
