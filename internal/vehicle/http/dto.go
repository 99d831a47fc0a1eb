package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/vehicle"
)

type VehicleResponse struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Registration       string    `json:"registration"`
	BasePricePerDay    int64     `json:"base_price_per_day"`
	HourlyRate         int64     `json:"hourly_rate"`
	AdditionalKmPerDay int       `json:"additional_km_per_day"`
	IsAutoApproval     bool      `json:"is_auto_approval"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		OwnerID:            v.OwnerID,
		Name:               v.Name,
		Category:           v.Category,
		Registration:       v.Registration,
		BasePricePerDay:    v.BasePricePerDay,
		HourlyRate:         v.HourlyRate,
		AdditionalKmPerDay: v.AdditionalKmPerDay,
		IsAutoApproval:     v.IsAutoApproval,
		IsActive:           v.IsActive,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

type CreateVehicleRequest struct {
	Name               string `json:"name" binding:"required"`
	Category           string `json:"category" binding:"required,oneof=hatchback sedan suv bike scooter"`
	Registration       string `json:"registration" binding:"required"`
	BasePricePerDay    int64  `json:"base_price_per_day" binding:"required,gt=0"`
	HourlyRate         int64  `json:"hourly_rate" binding:"required,gt=0"`
	AdditionalKmPerDay int    `json:"additional_km_per_day" binding:"omitempty,gte=0"`
	IsAutoApproval     bool   `json:"is_auto_approval"`
}

// Validate performs custom validation for CreateVehicleRequest.
func (r *CreateVehicleRequest) Validate() error {
	return nil
}

// UpdateVehicleRequest defines fields allowed to be updated via PATCH /vehicles/:id.
// Use pointers to distinguish between "field not sent" and "field sent as empty".
type UpdateVehicleRequest struct {
	Name               *string `json:"name"`
	BasePricePerDay    *int64  `json:"base_price_per_day" binding:"omitempty,gt=0"`
	HourlyRate         *int64  `json:"hourly_rate" binding:"omitempty,gt=0"`
	AdditionalKmPerDay *int    `json:"additional_km_per_day" binding:"omitempty,gte=0"`
	IsAutoApproval     *bool   `json:"is_auto_approval"`
	IsActive           *bool   `json:"is_active"`
}

// Validate performs custom validation for UpdateVehicleRequest.
func (r *UpdateVehicleRequest) Validate() error {
	return nil
}
