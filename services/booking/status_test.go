package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusProgression(t *testing.T) {
	t.Run("follows the forward path one step at a time", func(t *testing.T) {
		steps := []Status{
			StatusPending,
			StatusAccepted,
			StatusProviderEnRoute,
			StatusProviderArrived,
			StatusInProgress,
			StatusCompleted,
		}
		for i := 0; i < len(steps)-1; i++ {
			assert.True(t, CanProgress(steps[i], steps[i+1]), "%v -> %v should be allowed", steps[i], steps[i+1])
		}
	})

	t.Run("rejects skipping ahead", func(t *testing.T) {
		assert.False(t, CanProgress(StatusAccepted, StatusProviderArrived))
		assert.False(t, CanProgress(StatusAccepted, StatusCompleted))
		assert.False(t, CanProgress(StatusPending, StatusInProgress))
	})

	t.Run("rejects moving backward", func(t *testing.T) {
		assert.False(t, CanProgress(StatusProviderArrived, StatusProviderEnRoute))
		assert.False(t, CanProgress(StatusInProgress, StatusAccepted))
		assert.False(t, CanProgress(StatusAccepted, StatusPending))
	})

	t.Run("terminal states absorb everything", func(t *testing.T) {
		for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
			_, ok := Next(terminal)
			assert.False(t, ok)
			assert.True(t, IsTerminal(terminal))
			assert.False(t, CanCancel(terminal))
		}
	})

	t.Run("cancellation is not a progression", func(t *testing.T) {
		for from := range progression {
			assert.False(t, CanProgress(from, StatusCancelled))
		}
	})
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(StatusPending))
	assert.True(t, CanCancel(StatusAccepted))
	assert.False(t, CanCancel(StatusProviderEnRoute))
	assert.False(t, CanCancel(StatusProviderArrived))
	assert.False(t, CanCancel(StatusInProgress))
	assert.False(t, CanCancel(StatusCompleted))
	assert.False(t, CanCancel(StatusCancelled))
}

func TestIsActive(t *testing.T) {
	active := []Status{StatusAccepted, StatusProviderEnRoute, StatusProviderArrived, StatusInProgress}
	for _, s := range active {
		assert.True(t, IsActive(s), "%v should be active", s)
	}
	for _, s := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		assert.False(t, IsActive(s), "%v should not be active", s)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusProviderEnRoute))
	assert.False(t, IsValidStatus(Status("DISPATCHED")))
	assert.False(t, IsValidStatus(Status("")))
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCard, PaymentGCash, PaymentPayMaya} {
		assert.True(t, IsValidPaymentMethod(m))
	}
	assert.False(t, IsValidPaymentMethod(PaymentMethod("CHEQUE")))
	assert.False(t, IsValidPaymentMethod(PaymentMethod("cash")))
}
