package booking

// Status is a booking lifecycle state. The forward path is strictly
// one step at a time; COMPLETED and CANCELLED are terminal.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusAccepted        Status = "ACCEPTED"
	StatusProviderEnRoute Status = "PROVIDER_EN_ROUTE"
	StatusProviderArrived Status = "PROVIDER_ARRIVED"
	StatusInProgress      Status = "IN_PROGRESS"
	StatusCompleted       Status = "COMPLETED"
	StatusCancelled       Status = "CANCELLED"
)

// progression maps each status to the only status allowed to follow it
// on the forward path. Cancellation is not a progression and is handled
// by CanCancel.
var progression = map[Status]Status{
	StatusPending:         StatusAccepted,
	StatusAccepted:        StatusProviderEnRoute,
	StatusProviderEnRoute: StatusProviderArrived,
	StatusProviderArrived: StatusInProgress,
	StatusInProgress:      StatusCompleted,
}

// Next returns the single status that may follow current, if any.
func Next(current Status) (Status, bool) {
	next, ok := progression[current]
	return next, ok
}

// CanProgress reports whether next is the allowed forward step from
// current. Skipping ahead and moving backward both fail.
func CanProgress(current, next Status) bool {
	allowed, ok := progression[current]
	return ok && allowed == next
}

// CanCancel reports whether a booking in s may still be cancelled.
// Once the provider is on the way the booking has to run its course.
func CanCancel(s Status) bool {
	return s == StatusPending || s == StatusAccepted
}

// IsTerminal reports whether s admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the booking is in a live service window:
// accepted but not yet finished. Location updates, chat and SOS are
// only allowed while active.
func IsActive(s Status) bool {
	switch s {
	case StatusAccepted, StatusProviderEnRoute, StatusProviderArrived, StatusInProgress:
		return true
	}
	return false
}

// IsValidStatus reports whether s is one of the known lifecycle states.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusProviderEnRoute,
		StatusProviderArrived, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is how the customer settles a booking. CASH is settled
// in person, so the platform fee is recovered from the provider's
// wallet; every other method is collected by the platform up front.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentCard    PaymentMethod = "CARD"
	PaymentGCash   PaymentMethod = "GCASH"
	PaymentPayMaya PaymentMethod = "PAYMAYA"
)

// IsValidPaymentMethod reports whether m is an accepted payment method.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentGCash, PaymentPayMaya:
		return true
	}
	return false
}
