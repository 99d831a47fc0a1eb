package extension

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuote(t *testing.T) {
	// Base end time for testing: 2025-01-17T10:00:00Z
	currentEnd := time.Date(2025, 1, 17, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		requestedEnd time.Time
		wantErr      error
		want         Quote
	}{
		{
			name:         "Two days and a partial hour",
			requestedEnd: time.Date(2025, 1, 19, 14, 30, 0, 0, time.UTC),
			// 52.5h rounds up to 53h = 2d 5h
			want: Quote{
				AdditionalDays:  2,
				AdditionalHours: 5,
				BaseRental:      5000,
				ProratedCharge:  625,
				Subtotal:        5625,
				GST:             1013, // round(1012.5), half-up
				Total:           6638,
			},
		},
		{
			name:         "Exact whole days leave no hour remainder",
			requestedEnd: currentEnd.Add(48 * time.Hour),
			want: Quote{
				AdditionalDays:  2,
				AdditionalHours: 0,
				BaseRental:      5000,
				ProratedCharge:  0,
				Subtotal:        5000,
				GST:             900,
				Total:           5900,
			},
		},
		{
			name:         "Partial hour bills as a full hour",
			requestedEnd: currentEnd.Add(30 * time.Minute),
			want: Quote{
				AdditionalDays:  0,
				AdditionalHours: 1,
				BaseRental:      0,
				ProratedCharge:  125,
				Subtotal:        125,
				GST:             23, // round(22.5)
				Total:           148,
			},
		},
		{
			name:         "One second past an exact hour rounds up",
			requestedEnd: currentEnd.Add(time.Hour + time.Second),
			want: Quote{
				AdditionalDays:  0,
				AdditionalHours: 2,
				BaseRental:      0,
				ProratedCharge:  250,
				Subtotal:        250,
				GST:             45,
				Total:           295,
			},
		},
		{
			name:         "23 remainder hours stay below a day",
			requestedEnd: currentEnd.Add(47 * time.Hour),
			want: Quote{
				AdditionalDays:  1,
				AdditionalHours: 23,
				BaseRental:      2500,
				ProratedCharge:  2875,
				Subtotal:        5375,
				GST:             968, // round(967.5)
				Total:           6343,
			},
		},
		{
			name:         "Equal to current end is not billable",
			requestedEnd: currentEnd,
			wantErr:      ErrInvalidRange,
		},
		{
			name:         "Before current end is not billable",
			requestedEnd: currentEnd.Add(-time.Hour),
			wantErr:      ErrInvalidRange,
		},
		{
			name:         "Exactly the maximum window is allowed",
			requestedEnd: currentEnd.Add(30 * 24 * time.Hour),
			want: Quote{
				AdditionalDays:  30,
				AdditionalHours: 0,
				BaseRental:      75000,
				ProratedCharge:  0,
				Subtotal:        75000,
				GST:             13500,
				Total:           88500,
			},
		},
		{
			name:         "One millisecond past the maximum window is rejected",
			requestedEnd: currentEnd.Add(30*24*time.Hour + time.Millisecond),
			wantErr:      ErrMaxExtensionExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := QuoteInput{
				CurrentEnd:      currentEnd,
				RequestedEnd:    tt.requestedEnd,
				BasePricePerDay: 2500,
				HourlyRate:      125,
			}

			got, err := ComputeQuote(in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Structural invariants hold for every valid quote.
			assert.Equal(t, got.BaseRental+got.ProratedCharge, got.Subtotal)
			assert.Equal(t, got.Subtotal+got.GST, got.Total)
			assert.Less(t, got.AdditionalHours, 24)
			assert.GreaterOrEqual(t, got.Total, int64(0))

			// Deterministic and idempotent: same input, identical output.
			again, err := ComputeQuote(in)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestComputeQuoteCustomMaxWindow(t *testing.T) {
	currentEnd := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	in := QuoteInput{
		CurrentEnd:       currentEnd,
		RequestedEnd:     currentEnd.Add(7 * 24 * time.Hour),
		BasePricePerDay:  1000,
		HourlyRate:       50,
		MaxExtensionDays: 7,
	}
	_, err := ComputeQuote(in)
	require.NoError(t, err)

	in.RequestedEnd = in.RequestedEnd.Add(time.Minute)
	_, err = ComputeQuote(in)
	require.ErrorIs(t, err, ErrMaxExtensionExceeded)
}

func TestExtraKmAllowance(t *testing.T) {
	tests := []struct {
		name     string
		quote    Quote
		kmPerDay int
		want     int
	}{
		{
			name:     "Whole days only",
			quote:    Quote{AdditionalDays: 2, AdditionalHours: 0},
			kmPerDay: 150,
			want:     300,
		},
		{
			name:     "Partial day grants a full day's allowance",
			quote:    Quote{AdditionalDays: 2, AdditionalHours: 5},
			kmPerDay: 150,
			want:     450,
		},
		{
			name:     "Hours only still grant one day",
			quote:    Quote{AdditionalDays: 0, AdditionalHours: 1},
			kmPerDay: 120,
			want:     120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtraKmAllowance(tt.quote, tt.kmPerDay))
		})
	}
}
