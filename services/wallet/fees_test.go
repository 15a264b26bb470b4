package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlatformFee(t *testing.T) {
	rate := decimal.RequireFromString("0.08")

	t.Run("eight percent of 500 is exactly 40", func(t *testing.T) {
		fee := PlatformFee(decimal.NewFromInt(500), rate)
		assert.Equal(t, "40.00", fee.StringFixed(2))
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		fee := PlatformFee(decimal.RequireFromString("333.33"), rate)
		assert.Equal(t, "26.67", fee.StringFixed(2))

		fee = PlatformFee(decimal.RequireFromString("125.55"), rate)
		assert.Equal(t, "10.04", fee.StringFixed(2))
	})

	t.Run("zero amount has zero fee", func(t *testing.T) {
		fee := PlatformFee(decimal.Zero, rate)
		assert.True(t, fee.IsZero())
	})
}

func TestSplitServiceAmount(t *testing.T) {
	percent := decimal.RequireFromString("0.10")

	t.Run("ten percent of 500", func(t *testing.T) {
		fee, earning := SplitServiceAmount(decimal.NewFromInt(500), percent)
		assert.Equal(t, "50.00", fee.StringFixed(2))
		assert.Equal(t, "450.00", earning.StringFixed(2))
	})

	t.Run("parts always add back up", func(t *testing.T) {
		for _, amount := range []string{"333.35", "99.99", "1000.01", "0.01"} {
			serviceAmount := decimal.RequireFromString(amount)
			fee, earning := SplitServiceAmount(serviceAmount, percent)
			assert.True(t, fee.Add(earning).Equal(serviceAmount), "amount %s: %s + %s", amount, fee, earning)
		}
	})
}
