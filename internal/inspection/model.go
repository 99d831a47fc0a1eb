package inspection

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("inspection not found")
	ErrInvalidPhase     = errors.New("invalid inspection phase")
	ErrInvalidFuel      = errors.New("fuel percent must be between 0 and 100")
	ErrInvalidOdometer  = errors.New("odometer reading must be non-negative")
	ErrInvalidCondition = errors.New("invalid section condition")
	ErrAlreadyRecorded  = errors.New("inspection already recorded for this phase")
	ErrOdometerRollback = errors.New("return odometer below pickup reading")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Phase marks whether the inspection happened at handover or return.
type Phase string

const (
	PhasePickup Phase = "pickup"
	PhaseReturn Phase = "return"
)

// Condition grades a section of the vehicle.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionScuffed Condition = "scuffed"
	ConditionDamaged Condition = "damaged"
)

// ValidSections enumerates the parts of the vehicle walked through
// during an inspection.
var ValidSections = []string{"exterior", "interior", "tyres", "engine"}

// Section is one line of the inspection checklist.
type Section struct {
	Name      string    `json:"name"`
	Condition Condition `json:"condition"`
	Note      *string   `json:"note,omitempty"`
}

// Inspection records the vehicle's state at pickup or return. At most
// one inspection exists per booking and phase.
type Inspection struct {
	ID          string
	BookingID   string
	VehicleID   string
	InspectorID string
	Phase       Phase
	OdometerKm  int
	FuelPercent int
	Sections    []Section
	PhotoIDs    []string
	Notes       *string
	CreatedAt   time.Time
}
