package vehicle

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("vehicle not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidRates        = errors.New("rates must be positive")
	ErrInvalidRegistration = errors.New("registration number is required")
	ErrPermissionDenied    = errors.New("permission denied")
)

// ValidCategories enumerates the vehicle categories the platform lists.
var ValidCategories = []string{"hatchback", "sedan", "suv", "bike", "scooter"}

// Vehicle represents a rentable listing with its pricing terms.
// BasePricePerDay and HourlyRate are integer currency units, fixed per
// booking at the time it is created.
type Vehicle struct {
	ID                 string
	OwnerID            string
	Name               string
	Category           string
	Registration       string
	BasePricePerDay    int64
	HourlyRate         int64
	AdditionalKmPerDay int
	// IsAutoApproval mirrors the owner's listing configuration:
	// extensions confirm instantly after payment instead of queueing
	// for manual review.
	IsAutoApproval bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	OwnerID  string
	Category string
	// ActiveOnly hides deactivated listings; public listing endpoints
	// always set it.
	ActiveOnly bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
