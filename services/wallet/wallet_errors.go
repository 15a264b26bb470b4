package wallet

import "fmt"

var (
	ErrWalletNotFound = fmt.Errorf("wallet not found")
	ErrInvalidAmount  = fmt.Errorf("amount must be greater than zero")
)
