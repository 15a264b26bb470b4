package booking

import "fmt"

var (
	ErrBookingNotFound     = fmt.Errorf("booking not found")
	ErrProviderNotFound    = fmt.Errorf("provider not found")
	ErrNotYours            = fmt.Errorf("you are not a party to this booking")
	ErrNoProviderAssigned  = fmt.Errorf("booking has no provider assigned")
	ErrBookingNotActive    = fmt.Errorf("booking is not in an active state")
	ErrNoLocation          = fmt.Errorf("no provider location recorded yet")
	ErrUnknownStatus       = fmt.Errorf("unknown booking status")
	ErrUnknownPayment      = fmt.Errorf("unknown payment method")
	ErrScheduleInPast      = fmt.Errorf("scheduled time must be in the future")
	ErrInvalidAmount       = fmt.Errorf("service amount must be greater than zero")
	ErrInvalidDuration     = fmt.Errorf("duration must be greater than zero")
	ErrCancelReasonMissing = fmt.Errorf("a cancellation reason is required")
)

// TransitionError rejects a move the status machine does not allow. It
// carries both states so the API can spell out what went wrong.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %v to %v", e.From, e.To)
}

func NewTransitionError(from, to Status) *TransitionError {
	return &TransitionError{From: from, To: to}
}
