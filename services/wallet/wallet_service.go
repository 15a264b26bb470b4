package wallet

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletStore is the slice of the store this service needs. *db.Store
// satisfies it.
type WalletStore interface {
	GetWalletByOwner(ctx context.Context, arg db.GetWalletByOwnerParams) (db.Wallet, error)
	SumPendingTopUps(ctx context.Context, walletID uuid.UUID) (string, error)
	SumCompletedTransactions(ctx context.Context, walletID uuid.UUID) (string, error)
	ListWalletTransactions(ctx context.Context, arg db.ListWalletTransactionsParams) ([]db.WalletTransaction, error)
	TopUpTx(ctx context.Context, arg db.TopUpTxParams) (db.TopUpTxResult, error)
	DeductFeeTx(ctx context.Context, arg db.DeductFeeTxParams) (db.DeductFeeTxResult, error)
	CreditEarningTx(ctx context.Context, arg db.CreditEarningTxParams) (db.CreditEarningTxResult, error)
	AddWalletLifetimeEarnings(ctx context.Context, arg db.AddWalletLifetimeEarningsParams) (db.Wallet, error)
}

const defaultCashFeeRate = "0.08"

type WalletService struct {
	store   WalletStore
	logger  *logging.Logger
	feeRate decimal.Decimal
}

// NewWalletService builds the wallet ledger service. cashFeeRate is the
// configured settlement fee rate for cash bookings; empty or invalid
// values fall back to the default. Zero is a valid rate.
func NewWalletService(store WalletStore, logger *logging.Logger, cashFeeRate string) *WalletService {
	rate, err := decimal.NewFromString(cashFeeRate)
	if err != nil || rate.IsNegative() {
		if cashFeeRate != "" {
			logger.Warn(fmt.Sprintf("invalid cash fee rate %q, using default %v", cashFeeRate, defaultCashFeeRate))
		}
		rate = decimal.RequireFromString(defaultCashFeeRate)
	}

	return &WalletService{
		store:   store,
		logger:  logger,
		feeRate: rate,
	}
}

// GetBalance reports the owner's balance, lifetime earnings and the sum
// of top-ups still pending. Wallet rows are created lazily on first
// transaction, so an owner without one simply has zeroes.
func (w *WalletService) GetBalance(ctx context.Context, ownerType string, ownerID int64) (*BalanceModel, error) {
	wallet, err := w.store.GetWalletByOwner(ctx, db.GetWalletByOwnerParams{
		OwnerType: ownerType,
		OwnerID:   ownerID,
	})
	if err == sql.ErrNoRows {
		return &BalanceModel{OwnerType: ownerType, OwnerID: ownerID}, nil
	} else if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
	}
	lifetime, err := decimal.NewFromString(wallet.LifetimeEarnings)
	if err != nil {
		return nil, fmt.Errorf("parse lifetime earnings %q: %w", wallet.LifetimeEarnings, err)
	}

	pendingStr, err := w.store.SumPendingTopUps(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	pending, err := decimal.NewFromString(pendingStr)
	if err != nil {
		return nil, fmt.Errorf("parse pending sum %q: %w", pendingStr, err)
	}

	return &BalanceModel{
		WalletID:         wallet.ID,
		OwnerType:        wallet.OwnerType,
		OwnerID:          wallet.OwnerID,
		Balance:          balance,
		LifetimeEarnings: lifetime,
		PendingTopUps:    pending,
	}, nil
}

type TopUpParams struct {
	OwnerType   string
	OwnerID     int64
	Amount      decimal.Decimal
	Method      string
	Reference   string
	Description string
}

func (w *WalletService) TopUp(ctx context.Context, arg TopUpParams) (*TransactionModel, error) {
	if !arg.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if arg.Description == "" {
		arg.Description = "Wallet top up"
	}
	// Gateways supply their own reference; manual top-ups get one here so
	// reconciliation always has a handle.
	if arg.Reference == "" {
		arg.Reference = "TOPUP-" + utils.GenerateRandomString(12)
	}

	result, err := w.store.TopUpTx(ctx, db.TopUpTxParams{
		OwnerType:   arg.OwnerType,
		OwnerID:     arg.OwnerID,
		Amount:      arg.Amount,
		Method:      arg.Method,
		Reference:   arg.Reference,
		Description: arg.Description,
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info(fmt.Sprintf("wallet %v topped up by %v", result.Wallet.ID, arg.Amount.StringFixed(2)))
	return ToTransactionModel(result.Transaction), nil
}

type DeductFeeParams struct {
	OwnerType     string
	OwnerID       int64
	BookingID     int64
	ServiceAmount decimal.Decimal
	Method        string
	Description   string
}

// DeductPlatformFee settles the platform's share of a cash booking from
// the owner's wallet. Returns (nil, nil) when the computed fee is zero.
// A balance short of the fee surfaces as *db.InsufficientFundsError and
// leaves the wallet untouched.
func (w *WalletService) DeductPlatformFee(ctx context.Context, arg DeductFeeParams) (*TransactionModel, error) {
	fee := PlatformFee(arg.ServiceAmount, w.feeRate)
	if !fee.IsPositive() {
		return nil, nil
	}

	result, err := w.store.DeductFeeTx(ctx, db.DeductFeeTxParams{
		OwnerType:   arg.OwnerType,
		OwnerID:     arg.OwnerID,
		BookingID:   arg.BookingID,
		Fee:         fee,
		Method:      arg.Method,
		Description: arg.Description,
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info(fmt.Sprintf("wallet %v charged platform fee %v for booking %v", result.Wallet.ID, fee.StringFixed(2), arg.BookingID))
	return ToTransactionModel(result.Transaction), nil
}

// CheckBalanceForFee is the read-only precheck for DeductPlatformFee.
// It uses the same fee function, so the answer can never drift from
// what the deduction would actually charge.
func (w *WalletService) CheckBalanceForFee(ctx context.Context, ownerType string, ownerID int64, serviceAmount decimal.Decimal) (*FeeCheckModel, error) {
	required := PlatformFee(serviceAmount, w.feeRate)

	current, err := w.ownerBalance(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	return &FeeCheckModel{
		HasEnough: current.GreaterThanOrEqual(required),
		Required:  required,
		Current:   current,
	}, nil
}

type CreditEarningParams struct {
	OwnerType   string
	OwnerID     int64
	BookingID   int64
	Amount      decimal.Decimal
	Method      string
	Description string
}

// CreditEarning pays out a provider earning held by the platform, used
// when a booking settles through a non-cash method.
func (w *WalletService) CreditEarning(ctx context.Context, arg CreditEarningParams) (*TransactionModel, error) {
	if !arg.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	result, err := w.store.CreditEarningTx(ctx, db.CreditEarningTxParams{
		OwnerType:   arg.OwnerType,
		OwnerID:     arg.OwnerID,
		BookingID:   arg.BookingID,
		Amount:      arg.Amount,
		Method:      arg.Method,
		Description: arg.Description,
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info(fmt.Sprintf("wallet %v credited earning %v for booking %v", result.Wallet.ID, arg.Amount.StringFixed(2), arg.BookingID))
	return ToTransactionModel(result.Transaction), nil
}

// AddLifetimeEarnings bumps the owner's lifetime earnings counter. The
// counter tracks gross earnings across every completed booking and is
// independent of the spendable balance.
func (w *WalletService) AddLifetimeEarnings(ctx context.Context, ownerType string, ownerID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}

	_, err := w.store.AddWalletLifetimeEarnings(ctx, db.AddWalletLifetimeEarningsParams{
		OwnerType:        ownerType,
		OwnerID:          ownerID,
		LifetimeEarnings: amount.StringFixed(2),
	})
	return err
}

// VerifyLedger recomputes the balance from COMPLETED ledger rows and
// compares it against the stored balance.
func (w *WalletService) VerifyLedger(ctx context.Context, ownerType string, ownerID int64) (*LedgerReport, error) {
	wallet, err := w.store.GetWalletByOwner(ctx, db.GetWalletByOwnerParams{
		OwnerType: ownerType,
		OwnerID:   ownerID,
	})
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
	}

	sumStr, err := w.store.SumCompletedTransactions(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	sum, err := decimal.NewFromString(sumStr)
	if err != nil {
		return nil, fmt.Errorf("parse ledger sum %q: %w", sumStr, err)
	}

	report := &LedgerReport{
		WalletID:  wallet.ID,
		Balance:   balance,
		LedgerSum: sum,
		Balanced:  balance.Equal(sum),
	}
	if !report.Balanced {
		w.logger.Error(fmt.Sprintf("wallet %v ledger drift: balance %v, ledger sum %v", wallet.ID, balance, sum))
	}
	return report, nil
}

func (w *WalletService) ListTransactions(ctx context.Context, ownerType string, ownerID int64, limit, offset int32) ([]*TransactionModel, error) {
	wallet, err := w.store.GetWalletByOwner(ctx, db.GetWalletByOwnerParams{
		OwnerType: ownerType,
		OwnerID:   ownerID,
	})
	if err == sql.ErrNoRows {
		return []*TransactionModel{}, nil
	} else if err != nil {
		return nil, err
	}

	txns, err := w.store.ListWalletTransactions(ctx, db.ListWalletTransactionsParams{
		WalletID: wallet.ID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return ToTransactionModels(txns), nil
}

func (w *WalletService) ownerBalance(ctx context.Context, ownerType string, ownerID int64) (decimal.Decimal, error) {
	wallet, err := w.store.GetWalletByOwner(ctx, db.GetWalletByOwnerParams{
		OwnerType: ownerType,
		OwnerID:   ownerID,
	})
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", wallet.Balance, err)
	}
	return balance, nil
}
