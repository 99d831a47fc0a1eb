package extension

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	nextAvail := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		state   FlowState
		event   Event
		want    FlowState
		wantErr bool
	}{
		{
			name:  "Available check moves to awaiting confirmation",
			state: StatePendingAvailability,
			event: AvailabilityChecked{Result: Result{Available: true}},
			want:  StateAwaitingConfirmation,
		},
		{
			name:  "Unavailable check moves to unavailable",
			state: StatePendingAvailability,
			event: AvailabilityChecked{Result: Result{Available: false, NextAvailable: &nextAvail}},
			want:  StateUnavailable,
		},
		{
			name:  "Checker failure keeps pending, not unavailable",
			state: StatePendingAvailability,
			event: AvailabilityChecked{Err: errors.New("timeout")},
			want:  StatePendingAvailability,
		},
		{
			name:    "Check result in awaiting state is invalid",
			state:   StateAwaitingConfirmation,
			event:   AvailabilityChecked{Result: Result{Available: true}},
			wantErr: true,
		},
		{
			name:  "Auto approval routes to payment",
			state: StateAwaitingConfirmation,
			event: ExtensionRequested{AutoApproval: true},
			want:  StatePaymentRequired,
		},
		{
			name:  "Manual approval bypasses payment entirely",
			state: StateAwaitingConfirmation,
			event: ExtensionRequested{AutoApproval: false},
			want:  StateManualRequestSent,
		},
		{
			name:    "Cannot request from unavailable",
			state:   StateUnavailable,
			event:   ExtensionRequested{AutoApproval: true},
			wantErr: true,
		},
		{
			name:    "Cannot request from pending",
			state:   StatePendingAvailability,
			event:   ExtensionRequested{AutoApproval: true},
			wantErr: true,
		},
		{
			name:  "Date change restarts the flow from unavailable",
			state: StateUnavailable,
			event: RequestedEndChanged{},
			want:  StatePendingAvailability,
		},
		{
			name:  "Date change restarts the flow from payment required",
			state: StatePaymentRequired,
			event: RequestedEndChanged{},
			want:  StatePendingAvailability,
		},
		{
			name:    "Date change after confirmation is invalid",
			state:   StateConfirmed,
			event:   RequestedEndChanged{},
			wantErr: true,
		},
		{
			name:    "Date change after manual request is invalid",
			state:   StateManualRequestSent,
			event:   RequestedEndChanged{},
			wantErr: true,
		},
		{
			name:  "Successful payment confirms",
			state: StatePaymentRequired,
			event: PaymentResult{Success: true},
			want:  StateConfirmed,
		},
		{
			name:  "Failed payment stays retryable",
			state: StatePaymentRequired,
			event: PaymentResult{Success: false},
			want:  StatePaymentRequired,
		},
		{
			name:    "Payment result outside payment state is invalid",
			state:   StateAwaitingConfirmation,
			event:   PaymentResult{Success: true},
			wantErr: true,
		},
		{
			name:    "Payment submission outside payment state is invalid",
			state:   StateConfirmed,
			event:   PaymentSubmitted{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(tt.state, tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.state, got, "state must be unchanged on invalid transition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionSupersession(t *testing.T) {
	sess := NewSession()
	firstToken := sess.CheckToken()

	// User changes the date before the first check resolves.
	secondToken, err := sess.ChangeRequestedEnd()
	require.NoError(t, err)
	require.Greater(t, secondToken, firstToken)

	// The superseded check resolves late; it must be discarded silently.
	applied, err := sess.ApplyAvailability(firstToken, Result{Available: false}, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, StatePendingAvailability, sess.State())

	// The newest check lands normally.
	applied, err = sess.ApplyAvailability(secondToken, Result{Available: true}, nil)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StateAwaitingConfirmation, sess.State())
}

func TestSessionCheckerFailureIsRetryable(t *testing.T) {
	sess := NewSession()

	applied, err := sess.ApplyAvailability(sess.CheckToken(), Result{}, errors.New("transport down"))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StatePendingAvailability, sess.State())

	// The same token may be retried; no date change is needed.
	applied, err = sess.ApplyAvailability(sess.CheckToken(), Result{Available: true}, nil)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StateAwaitingConfirmation, sess.State())
}

func TestSessionPaymentLifecycle(t *testing.T) {
	sess := NewSession()

	_, err := sess.ApplyAvailability(sess.CheckToken(), Result{Available: true}, nil)
	require.NoError(t, err)
	require.NoError(t, sess.RequestExtension(true))
	require.Equal(t, StatePaymentRequired, sess.State())

	require.NoError(t, sess.BeginPayment())

	// At most one payment in flight.
	err = sess.BeginPayment()
	require.ErrorIs(t, err, ErrPaymentInFlight)

	// Declined payment returns to a retryable state.
	require.NoError(t, sess.FinishPayment(false))
	require.Equal(t, StatePaymentRequired, sess.State())

	// Retry succeeds and the flow terminates.
	require.NoError(t, sess.BeginPayment())
	require.NoError(t, sess.FinishPayment(true))
	require.Equal(t, StateConfirmed, sess.State())
	assert.True(t, sess.State().Terminal())

	_, err = sess.ChangeRequestedEnd()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionManualApprovalSkipsPayment(t *testing.T) {
	sess := NewSession()

	_, err := sess.ApplyAvailability(sess.CheckToken(), Result{Available: true}, nil)
	require.NoError(t, err)

	require.NoError(t, sess.RequestExtension(false))
	require.Equal(t, StateManualRequestSent, sess.State())
	assert.True(t, sess.State().Terminal())

	// No payment may be collected for a manually reviewed request.
	err = sess.BeginPayment()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionUnavailableRequiresDateChange(t *testing.T) {
	sess := NewSession()

	next := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	_, err := sess.ApplyAvailability(sess.CheckToken(), Result{Available: false, NextAvailable: &next}, nil)
	require.NoError(t, err)
	require.Equal(t, StateUnavailable, sess.State())

	// No auto-retry: a fresh check result in this state is invalid.
	_, err = sess.ApplyAvailability(sess.CheckToken(), Result{Available: true}, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Only a date change re-enters the flow.
	_, err = sess.ChangeRequestedEnd()
	require.NoError(t, err)
	require.Equal(t, StatePendingAvailability, sess.State())
}
