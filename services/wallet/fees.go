package wallet

import "github.com/shopspring/decimal"

// PlatformFee is the cash-settlement fee owed to the platform for a
// completed booking. The pre-completion check and the actual deduction
// both call this one function so they can never disagree on rounding.
func PlatformFee(serviceAmount, rate decimal.Decimal) decimal.Decimal {
	return serviceAmount.Mul(rate).Round(2)
}

// SplitServiceAmount divides a booking's service amount into the
// platform's share and the provider's earning at creation time. The
// earning is the remainder, so the two always add back up exactly.
func SplitServiceAmount(serviceAmount, feePercent decimal.Decimal) (platformFee, providerEarning decimal.Decimal) {
	platformFee = serviceAmount.Mul(feePercent).Round(2)
	providerEarning = serviceAmount.Sub(platformFee)
	return platformFee, providerEarning
}
