package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/extension"
)

// QuoteExtensionRequest carries the end time the user wants to extend to.
type QuoteExtensionRequest struct {
	RequestedEnd time.Time `json:"requested_end" binding:"required"`
}

// SubmitPaymentRequest selects a stored payment method for the charge.
type SubmitPaymentRequest struct {
	MethodID string `json:"method_id" binding:"required,uuid"`
}

type QuoteResponse struct {
	AdditionalDays  int   `json:"additional_days"`
	AdditionalHours int   `json:"additional_hours"`
	BaseRental      int64 `json:"base_rental"`
	ProratedCharge  int64 `json:"prorated_charge"`
	Subtotal        int64 `json:"subtotal"`
	GST             int64 `json:"gst"`
	Total           int64 `json:"total"`
}

func NewQuoteResponse(q *extension.Quote) QuoteResponse {
	return QuoteResponse{
		AdditionalDays:  q.AdditionalDays,
		AdditionalHours: q.AdditionalHours,
		BaseRental:      q.BaseRental,
		ProratedCharge:  q.ProratedCharge,
		Subtotal:        q.Subtotal,
		GST:             q.GST,
		Total:           q.Total,
	}
}

type ExtensionResponse struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"booking_id"`
	VehicleID     string        `json:"vehicle_id"`
	CurrentEnd    time.Time     `json:"current_end"`
	RequestedEnd  time.Time     `json:"requested_end"`
	Quote         QuoteResponse `json:"quote"`
	Status        string        `json:"status"`
	NextAvailable *time.Time    `json:"next_available,omitempty"`
	PaymentID     *string       `json:"payment_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func NewExtensionResponse(r *extension.Request) ExtensionResponse {
	return ExtensionResponse{
		ID:            r.ID,
		BookingID:     r.BookingID,
		VehicleID:     r.VehicleID,
		CurrentEnd:    r.CurrentEnd,
		RequestedEnd:  r.RequestedEnd,
		Quote:         NewQuoteResponse(&r.Quote),
		Status:        string(r.Status),
		NextAvailable: r.NextAvailable,
		PaymentID:     r.PaymentID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
