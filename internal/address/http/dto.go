package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/address"
)

type AddressResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Line1     string    `json:"line1"`
	Line2     *string   `json:"line2"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAddressResponse(a *address.Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Label:     a.Label,
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		Pincode:   a.Pincode,
		Longitude: a.Longitude,
		Latitude:  a.Latitude,
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type CreateAddressRequest struct {
	Label     string  `json:"label" binding:"required"`
	Line1     string  `json:"line1" binding:"required"`
	Line2     string  `json:"line2"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	IsDefault bool    `json:"is_default"`
}

// Validate performs custom validation for CreateAddressRequest.
func (r *CreateAddressRequest) Validate() error {
	return nil
}

type UpdateAddressRequest struct {
	Label     *string  `json:"label"`
	Line1     *string  `json:"line1"`
	Line2     *string  `json:"line2"`
	City      *string  `json:"city"`
	Pincode   *string  `json:"pincode"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	IsDefault *bool    `json:"is_default"`
}

// Validate performs custom validation for UpdateAddressRequest.
func (r *UpdateAddressRequest) Validate() error {
	return nil
}
