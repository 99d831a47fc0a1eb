package extension

import (
	"time"
)

// DefaultMaxExtensionDays bounds how far past the current end time a
// booking may be extended, inclusive.
const DefaultMaxExtensionDays = 30

// gstRatePercent is the tax rate applied once to the pre-tax subtotal.
const gstRatePercent = 18

// QuoteInput carries everything needed to price an extension.
// Rates are integer currency units, fixed per booking.
type QuoteInput struct {
	CurrentEnd      time.Time
	RequestedEnd    time.Time
	BasePricePerDay int64
	HourlyRate      int64

	// MaxExtensionDays overrides DefaultMaxExtensionDays when positive.
	MaxExtensionDays int
}

// Quote is the priced breakdown for an extension window.
// AdditionalHours is the remainder after extracting whole days, always < 24.
type Quote struct {
	AdditionalDays  int   `json:"additional_days"`
	AdditionalHours int   `json:"additional_hours"`
	BaseRental      int64 `json:"base_rental"`
	ProratedCharge  int64 `json:"prorated_charge"`
	Subtotal        int64 `json:"subtotal"`
	GST             int64 `json:"gst"`
	Total           int64 `json:"total"`
}

// ComputeQuote prices the window between CurrentEnd and RequestedEnd.
// It is pure: identical input always yields identical output.
//
// Billing policy: the elapsed duration is rounded up to the next whole
// hour, so any partial hour is billed as a full hour. GST is computed
// once on the subtotal (never per line item) and rounded half-up.
func ComputeQuote(in QuoteInput) (Quote, error) {
	diff := in.RequestedEnd.Sub(in.CurrentEnd)
	if diff <= 0 {
		return Quote{}, ErrInvalidRange
	}

	maxDays := in.MaxExtensionDays
	if maxDays <= 0 {
		maxDays = DefaultMaxExtensionDays
	}
	// Inclusive bound: landing exactly on the limit is allowed.
	limit := in.CurrentEnd.Add(time.Duration(maxDays) * 24 * time.Hour)
	if in.RequestedEnd.After(limit) {
		return Quote{}, ErrMaxExtensionExceeded
	}

	totalHours := int64(diff / time.Hour)
	if diff%time.Hour > 0 {
		totalHours++
	}

	q := Quote{
		AdditionalDays:  int(totalHours / 24),
		AdditionalHours: int(totalHours % 24),
	}
	q.BaseRental = int64(q.AdditionalDays) * in.BasePricePerDay
	q.ProratedCharge = int64(q.AdditionalHours) * in.HourlyRate
	q.Subtotal = q.BaseRental + q.ProratedCharge
	q.GST = (q.Subtotal*gstRatePercent + 50) / 100
	q.Total = q.Subtotal + q.GST

	return q, nil
}

// ExtraKmAllowance returns the KM allowance granted by an extension.
// A partial day grants that day's full allowance, mirroring the
// round-up-per-hour billing policy.
func ExtraKmAllowance(q Quote, additionalKmPerDay int) int {
	days := q.AdditionalDays
	if q.AdditionalHours > 0 {
		days++
	}
	return additionalKmPerDay * days
}
