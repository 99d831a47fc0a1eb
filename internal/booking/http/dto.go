package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/booking"
)

type BookingResponse struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	KmLimit     int       `json:"km_limit"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		VehicleID:   b.VehicleID,
		VehicleName: b.VehicleName,
		UserID:      b.UserID,
		UserName:    b.UserName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		KmLimit:     b.KmLimit,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	VehicleID string    `json:"vehicle_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidTimeRange
	}
	if r.StartTime.Before(time.Now()) {
		return booking.ErrStartTimePast
	}
	return nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed cancelled"`
}
