package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	WalletOwnerProvider = "provider"
	WalletOwnerShop     = "shop"
)

const (
	TransactionTopUp       = "TOP_UP"
	TransactionPlatformFee = "PLATFORM_FEE"
	TransactionEarning     = "EARNING"
	TransactionRefund      = "REFUND"
	TransactionAdjustment  = "ADJUSTMENT"
)

const (
	TransactionPending   = "PENDING"
	TransactionCompleted = "COMPLETED"
	TransactionFailed    = "FAILED"
)

// InsufficientFundsError reports a failed deduction along with the
// balance that was actually available when the deduction ran.
type InsufficientFundsError struct {
	Required decimal.Decimal
	Current  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, current %s", e.Required.StringFixed(2), e.Current.StringFixed(2))
}

type TopUpTxParams struct {
	OwnerType   string
	OwnerID     int64
	Amount      decimal.Decimal
	Method      string
	Reference   string
	Description string
}

type TopUpTxResult struct {
	Wallet      Wallet
	Transaction WalletTransaction
}

// TopUpTx credits a wallet and writes the matching ledger row in one
// transaction. The wallet is created lazily on first use; UpsertWallet
// also locks the row so concurrent mutations serialize on it.
func (s *Store) TopUpTx(ctx context.Context, arg TopUpTxParams) (TopUpTxResult, error) {
	var result TopUpTxResult

	err := s.ExecTx(ctx, func(q *Queries) error {
		wallet, err := q.UpsertWallet(ctx, UpsertWalletParams{
			OwnerType: arg.OwnerType,
			OwnerID:   arg.OwnerID,
		})
		if err != nil {
			return fmt.Errorf("upsert wallet: %w", err)
		}

		before, err := decimal.NewFromString(wallet.Balance)
		if err != nil {
			return fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
		}
		after := before.Add(arg.Amount)

		result.Wallet, err = q.UpdateWalletBalance(ctx, UpdateWalletBalanceParams{
			Balance: after.StringFixed(2),
			ID:      wallet.ID,
		})
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		result.Transaction, err = q.CreateWalletTransaction(ctx, CreateWalletTransactionParams{
			WalletID:      wallet.ID,
			Type:          TransactionTopUp,
			Status:        TransactionCompleted,
			Amount:        arg.Amount.StringFixed(2),
			BalanceBefore: before.StringFixed(2),
			BalanceAfter:  after.StringFixed(2),
			Method:        sql.NullString{String: arg.Method, Valid: arg.Method != ""},
			Reference:     sql.NullString{String: arg.Reference, Valid: arg.Reference != ""},
			Description:   arg.Description,
		})
		if err != nil {
			return fmt.Errorf("create transaction record: %w", err)
		}

		return nil
	})

	return result, err
}

type DeductFeeTxParams struct {
	OwnerType   string
	OwnerID     int64
	BookingID   int64
	Fee         decimal.Decimal
	Method      string
	Description string
}

type DeductFeeTxResult struct {
	Wallet      Wallet
	Transaction WalletTransaction
}

// DeductFeeTx debits the platform fee from a wallet. The ledger row
// carries a negative amount so that summing COMPLETED rows reproduces
// the balance. Returns *InsufficientFundsError without writing anything
// when the balance cannot cover the fee.
func (s *Store) DeductFeeTx(ctx context.Context, arg DeductFeeTxParams) (DeductFeeTxResult, error) {
	var result DeductFeeTxResult

	err := s.ExecTx(ctx, func(q *Queries) error {
		wallet, err := q.UpsertWallet(ctx, UpsertWalletParams{
			OwnerType: arg.OwnerType,
			OwnerID:   arg.OwnerID,
		})
		if err != nil {
			return fmt.Errorf("upsert wallet: %w", err)
		}

		before, err := decimal.NewFromString(wallet.Balance)
		if err != nil {
			return fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
		}

		if before.LessThan(arg.Fee) {
			return &InsufficientFundsError{Required: arg.Fee, Current: before}
		}
		after := before.Sub(arg.Fee)

		result.Wallet, err = q.UpdateWalletBalance(ctx, UpdateWalletBalanceParams{
			Balance: after.StringFixed(2),
			ID:      wallet.ID,
		})
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		result.Transaction, err = q.CreateWalletTransaction(ctx, CreateWalletTransactionParams{
			WalletID:      wallet.ID,
			BookingID:     sql.NullInt64{Int64: arg.BookingID, Valid: true},
			Type:          TransactionPlatformFee,
			Status:        TransactionCompleted,
			Amount:        arg.Fee.Neg().StringFixed(2),
			BalanceBefore: before.StringFixed(2),
			BalanceAfter:  after.StringFixed(2),
			Method:        sql.NullString{String: arg.Method, Valid: arg.Method != ""},
			Description:   arg.Description,
		})
		if err != nil {
			return fmt.Errorf("create transaction record: %w", err)
		}

		return nil
	})

	return result, err
}

type CreditEarningTxParams struct {
	OwnerType   string
	OwnerID     int64
	BookingID   int64
	Amount      decimal.Decimal
	Method      string
	Description string
}

type CreditEarningTxResult struct {
	Wallet      Wallet
	Transaction WalletTransaction
}

// CreditEarningTx credits a provider earning held by the platform,
// used when a booking settles through a non-cash method.
func (s *Store) CreditEarningTx(ctx context.Context, arg CreditEarningTxParams) (CreditEarningTxResult, error) {
	var result CreditEarningTxResult

	err := s.ExecTx(ctx, func(q *Queries) error {
		wallet, err := q.UpsertWallet(ctx, UpsertWalletParams{
			OwnerType: arg.OwnerType,
			OwnerID:   arg.OwnerID,
		})
		if err != nil {
			return fmt.Errorf("upsert wallet: %w", err)
		}

		before, err := decimal.NewFromString(wallet.Balance)
		if err != nil {
			return fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
		}
		after := before.Add(arg.Amount)

		result.Wallet, err = q.UpdateWalletBalance(ctx, UpdateWalletBalanceParams{
			Balance: after.StringFixed(2),
			ID:      wallet.ID,
		})
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		result.Transaction, err = q.CreateWalletTransaction(ctx, CreateWalletTransactionParams{
			WalletID:      wallet.ID,
			BookingID:     sql.NullInt64{Int64: arg.BookingID, Valid: true},
			Type:          TransactionEarning,
			Status:        TransactionCompleted,
			Amount:        arg.Amount.StringFixed(2),
			BalanceBefore: before.StringFixed(2),
			BalanceAfter:  after.StringFixed(2),
			Method:        sql.NullString{String: arg.Method, Valid: arg.Method != ""},
			Description:   arg.Description,
		})
		if err != nil {
			return fmt.Errorf("create transaction record: %w", err)
		}

		return nil
	})

	return result, err
}
