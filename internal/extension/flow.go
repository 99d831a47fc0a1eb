package extension

// FlowState is one approval-flow state of an extension request.
type FlowState string

const (
	// StatePendingAvailability is the initial state; an availability
	// check for the requested window is outstanding.
	StatePendingAvailability FlowState = "pending_availability"
	// StateUnavailable means the vehicle is busy for the window.
	// The user must pick a new end time to re-enter the flow.
	StateUnavailable FlowState = "unavailable"
	// StateAwaitingConfirmation means the window is free and the user
	// has not yet triggered the extension request.
	StateAwaitingConfirmation FlowState = "available_awaiting_confirmation"
	// StatePaymentRequired means the owner auto-approves and payment
	// must be collected before the extension is applied.
	StatePaymentRequired FlowState = "payment_required"
	// StateManualRequestSent means the owner reviews requests by hand;
	// terminal for this session.
	StateManualRequestSent FlowState = "manual_request_sent"
	// StateConfirmed is terminal: the booking has been extended.
	StateConfirmed FlowState = "confirmed"
)

// Terminal reports whether no further events are accepted in s.
func (s FlowState) Terminal() bool {
	return s == StateConfirmed || s == StateManualRequestSent
}

// Event is one approval-flow input.
type Event interface{ flowEvent() }

// RequestedEndChanged fires when the user picks a new end time.
// Any in-flight availability check is superseded.
type RequestedEndChanged struct{}

// AvailabilityChecked carries the outcome of an availability check.
// Err is a collaborator failure, distinct from the business outcome
// "unavailable"; it leaves the flow in pending_availability.
type AvailabilityChecked struct {
	Result Result
	Err    error
}

// ExtensionRequested fires when the user confirms the extension.
type ExtensionRequested struct {
	AutoApproval bool
}

// PaymentSubmitted fires when a payment attempt starts.
type PaymentSubmitted struct{}

// PaymentResult carries the outcome of a payment attempt.
type PaymentResult struct {
	Success bool
}

func (RequestedEndChanged) flowEvent() {}
func (AvailabilityChecked) flowEvent() {}
func (ExtensionRequested) flowEvent()  {}
func (PaymentSubmitted) flowEvent()    {}
func (PaymentResult) flowEvent()       {}

// Advance applies one event to a flow state and returns the new state.
// It is a pure function; callers own the state. Invalid pairs return
// ErrInvalidTransition and leave the state unchanged.
func Advance(state FlowState, ev Event) (FlowState, error) {
	switch e := ev.(type) {
	case RequestedEndChanged:
		// Terminal states cannot be re-entered; everything else goes
		// back to the start of the flow.
		if state.Terminal() {
			return state, ErrInvalidTransition
		}
		return StatePendingAvailability, nil

	case AvailabilityChecked:
		if state != StatePendingAvailability {
			return state, ErrInvalidTransition
		}
		if e.Err != nil {
			// Recoverable collaborator failure: stay put, retryable.
			return StatePendingAvailability, nil
		}
		if !e.Result.Available {
			return StateUnavailable, nil
		}
		return StateAwaitingConfirmation, nil

	case ExtensionRequested:
		if state != StateAwaitingConfirmation {
			return state, ErrInvalidTransition
		}
		if e.AutoApproval {
			return StatePaymentRequired, nil
		}
		return StateManualRequestSent, nil

	case PaymentSubmitted:
		if state != StatePaymentRequired {
			return state, ErrInvalidTransition
		}
		return StatePaymentRequired, nil

	case PaymentResult:
		if state != StatePaymentRequired {
			return state, ErrInvalidTransition
		}
		if e.Success {
			return StateConfirmed, nil
		}
		// Declined payments are retryable.
		return StatePaymentRequired, nil
	}

	return state, ErrInvalidTransition
}

// Session owns the mutable flow state for one extension attempt:
// the current state, the supersession token of the newest availability
// check, and the at-most-one-in-flight payment guard. A Session is not
// shared between attempts and is not safe for concurrent use.
type Session struct {
	state           FlowState
	checkToken      int64
	paymentInFlight bool
}

// NewSession starts a fresh flow in pending_availability with the
// first check token already issued.
func NewSession() *Session {
	return &Session{state: StatePendingAvailability, checkToken: 1}
}

// ResumeSession rebuilds a session from persisted state.
func ResumeSession(state FlowState, checkToken int64) *Session {
	return &Session{state: state, checkToken: checkToken}
}

// State returns the current flow state.
func (s *Session) State() FlowState {
	return s.state
}

// CheckToken returns the token identifying the newest availability check.
func (s *Session) CheckToken() int64 {
	return s.checkToken
}

// ChangeRequestedEnd restarts the flow for a new end time and returns
// the token the next availability check must carry. Results from
// checks issued before this call become stale.
func (s *Session) ChangeRequestedEnd() (int64, error) {
	next, err := Advance(s.state, RequestedEndChanged{})
	if err != nil {
		return 0, err
	}
	s.state = next
	s.checkToken++
	s.paymentInFlight = false
	return s.checkToken, nil
}

// ApplyAvailability applies a check outcome. A result carrying a token
// older than the newest issued one is discarded silently: applied is
// false and the state is untouched.
func (s *Session) ApplyAvailability(token int64, res Result, checkErr error) (applied bool, err error) {
	if token != s.checkToken {
		return false, nil
	}
	next, err := Advance(s.state, AvailabilityChecked{Result: res, Err: checkErr})
	if err != nil {
		return false, err
	}
	s.state = next
	return true, nil
}

// RequestExtension confirms the extension and routes it to payment or
// to the owner's manual queue.
func (s *Session) RequestExtension(autoApproval bool) error {
	next, err := Advance(s.state, ExtensionRequested{AutoApproval: autoApproval})
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// BeginPayment marks a payment attempt as in flight. A second call
// before FinishPayment fails with ErrPaymentInFlight.
func (s *Session) BeginPayment() error {
	if s.paymentInFlight {
		return ErrPaymentInFlight
	}
	next, err := Advance(s.state, PaymentSubmitted{})
	if err != nil {
		return err
	}
	s.state = next
	s.paymentInFlight = true
	return nil
}

// FinishPayment resolves the in-flight payment attempt.
func (s *Session) FinishPayment(success bool) error {
	next, err := Advance(s.state, PaymentResult{Success: success})
	if err != nil {
		return err
	}
	s.state = next
	s.paymentInFlight = false
	return nil
}
