package wallet

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletStore struct {
	mock.Mock
}

func (m *MockWalletStore) GetWalletByOwner(ctx context.Context, arg db.GetWalletByOwnerParams) (db.Wallet, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Wallet), args.Error(1)
}

func (m *MockWalletStore) SumPendingTopUps(ctx context.Context, walletID uuid.UUID) (string, error) {
	args := m.Called(ctx, walletID)
	return args.String(0), args.Error(1)
}

func (m *MockWalletStore) SumCompletedTransactions(ctx context.Context, walletID uuid.UUID) (string, error) {
	args := m.Called(ctx, walletID)
	return args.String(0), args.Error(1)
}

func (m *MockWalletStore) ListWalletTransactions(ctx context.Context, arg db.ListWalletTransactionsParams) ([]db.WalletTransaction, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.WalletTransaction), args.Error(1)
}

func (m *MockWalletStore) TopUpTx(ctx context.Context, arg db.TopUpTxParams) (db.TopUpTxResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.TopUpTxResult), args.Error(1)
}

func (m *MockWalletStore) DeductFeeTx(ctx context.Context, arg db.DeductFeeTxParams) (db.DeductFeeTxResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.DeductFeeTxResult), args.Error(1)
}

func (m *MockWalletStore) CreditEarningTx(ctx context.Context, arg db.CreditEarningTxParams) (db.CreditEarningTxResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.CreditEarningTxResult), args.Error(1)
}

func (m *MockWalletStore) AddWalletLifetimeEarnings(ctx context.Context, arg db.AddWalletLifetimeEarningsParams) (db.Wallet, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.Wallet), args.Error(1)
}

func newTestService(store WalletStore) *WalletService {
	return NewWalletService(store, &logging.Logger{Logger: logrus.New()}, "0.08")
}

func TestTopUp(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		_, err := service.TopUp(ctx, TopUpParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			Amount:    decimal.Zero,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = service.TopUp(ctx, TopUpParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			Amount:    decimal.NewFromInt(-50),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		store.AssertNotCalled(t, "TopUpTx", mock.Anything, mock.Anything)
	})

	t.Run("credits the wallet", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("TopUpTx", ctx, mock.MatchedBy(func(arg db.TopUpTxParams) bool {
			return arg.OwnerType == db.WalletOwnerProvider &&
				arg.OwnerID == int64(7) &&
				arg.Amount.Equal(decimal.NewFromInt(200)) &&
				strings.HasPrefix(arg.Reference, "TOPUP-")
		})).Return(db.TopUpTxResult{
			Wallet: db.Wallet{ID: walletID, Balance: "200.00"},
			Transaction: db.WalletTransaction{
				ID:            uuid.New(),
				WalletID:      walletID,
				Type:          db.TransactionTopUp,
				Status:        db.TransactionCompleted,
				Amount:        "200.00",
				BalanceBefore: "0.00",
				BalanceAfter:  "200.00",
				Description:   "Wallet top up",
				CreatedAt:     time.Now(),
			},
		}, nil)

		txn, err := service.TopUp(ctx, TopUpParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			Amount:    decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		assert.Equal(t, "200.00", txn.Amount)
		assert.Equal(t, "0.00", txn.BalanceBefore)
		assert.Equal(t, "200.00", txn.BalanceAfter)

		store.AssertExpectations(t)
	})

	t.Run("keeps a caller supplied reference", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("TopUpTx", ctx, mock.MatchedBy(func(arg db.TopUpTxParams) bool {
			return arg.Reference == "PSGW-20260823-0001"
		})).Return(db.TopUpTxResult{
			Wallet:      db.Wallet{ID: uuid.New(), Balance: "50.00"},
			Transaction: db.WalletTransaction{Type: db.TransactionTopUp, Amount: "50.00"},
		}, nil)

		_, err := service.TopUp(ctx, TopUpParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			Amount:    decimal.NewFromInt(50),
			Reference: "PSGW-20260823-0001",
		})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestDeductPlatformFee(t *testing.T) {
	ctx := context.Background()

	t.Run("charges eight percent of the service amount", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("DeductFeeTx", ctx, mock.MatchedBy(func(arg db.DeductFeeTxParams) bool {
			return arg.Fee.Equal(decimal.RequireFromString("40.00")) && arg.BookingID == int64(11)
		})).Return(db.DeductFeeTxResult{
			Wallet: db.Wallet{ID: walletID, Balance: "60.00"},
			Transaction: db.WalletTransaction{
				ID:            uuid.New(),
				WalletID:      walletID,
				BookingID:     sql.NullInt64{Int64: 11, Valid: true},
				Type:          db.TransactionPlatformFee,
				Status:        db.TransactionCompleted,
				Amount:        "-40.00",
				BalanceBefore: "100.00",
				BalanceAfter:  "60.00",
			},
		}, nil)

		txn, err := service.DeductPlatformFee(ctx, DeductFeeParams{
			OwnerType:     db.WalletOwnerProvider,
			OwnerID:       7,
			BookingID:     11,
			ServiceAmount: decimal.NewFromInt(500),
			Method:        "CASH",
		})
		require.NoError(t, err)
		assert.Equal(t, "-40.00", txn.Amount)

		store.AssertExpectations(t)
	})

	t.Run("insufficient balance surfaces required and current", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("DeductFeeTx", ctx, mock.Anything).Return(db.DeductFeeTxResult{}, &db.InsufficientFundsError{
			Required: decimal.RequireFromString("40.00"),
			Current:  decimal.RequireFromString("39.99"),
		})

		_, err := service.DeductPlatformFee(ctx, DeductFeeParams{
			OwnerType:     db.WalletOwnerProvider,
			OwnerID:       7,
			BookingID:     11,
			ServiceAmount: decimal.NewFromInt(500),
			Method:        "CASH",
		})

		var insufficient *db.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, "40.00", insufficient.Required.StringFixed(2))
		assert.Equal(t, "39.99", insufficient.Current.StringFixed(2))
	})

	t.Run("zero fee skips the ledger entirely", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		txn, err := service.DeductPlatformFee(ctx, DeductFeeParams{
			OwnerType:     db.WalletOwnerProvider,
			OwnerID:       7,
			BookingID:     11,
			ServiceAmount: decimal.Zero,
		})
		require.NoError(t, err)
		assert.Nil(t, txn)

		store.AssertNotCalled(t, "DeductFeeTx", mock.Anything, mock.Anything)
	})
}

func TestCheckBalanceForFee(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh owner at 1000 needs 80", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("GetWalletByOwner", ctx, db.GetWalletByOwnerParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
		}).Return(db.Wallet{}, sql.ErrNoRows)

		check, err := service.CheckBalanceForFee(ctx, db.WalletOwnerProvider, 7, decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.False(t, check.HasEnough)
		assert.Equal(t, "80.00", check.Required.StringFixed(2))
		assert.Equal(t, "0.00", check.Current.StringFixed(2))
	})

	t.Run("funded owner passes", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{
			ID:      uuid.New(),
			Balance: "80.00",
		}, nil)

		check, err := service.CheckBalanceForFee(ctx, db.WalletOwnerProvider, 7, decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.True(t, check.HasEnough)
		assert.Equal(t, "80.00", check.Current.StringFixed(2))
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("owner without a wallet has zeroes", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{}, sql.ErrNoRows)

		balance, err := service.GetBalance(ctx, db.WalletOwnerShop, 3)
		require.NoError(t, err)
		assert.True(t, balance.Balance.IsZero())
		assert.True(t, balance.LifetimeEarnings.IsZero())
		assert.True(t, balance.PendingTopUps.IsZero())

		store.AssertNotCalled(t, "SumPendingTopUps", mock.Anything, mock.Anything)
	})

	t.Run("reports balance, lifetime earnings and pending sum", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{
			ID:               walletID,
			OwnerType:        db.WalletOwnerProvider,
			OwnerID:          7,
			Balance:          "120.50",
			LifetimeEarnings: "900.00",
		}, nil)
		store.On("SumPendingTopUps", ctx, walletID).Return("35.00", nil)

		balance, err := service.GetBalance(ctx, db.WalletOwnerProvider, 7)
		require.NoError(t, err)
		assert.Equal(t, "120.50", balance.Balance.StringFixed(2))
		assert.Equal(t, "900.00", balance.LifetimeEarnings.StringFixed(2))
		assert.Equal(t, "35.00", balance.PendingTopUps.StringFixed(2))

		store.AssertExpectations(t)
	})
}

func TestCreditEarning(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		_, err := service.CreditEarning(ctx, CreditEarningParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			BookingID: 11,
			Amount:    decimal.Zero,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("credits the earning", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("CreditEarningTx", ctx, mock.MatchedBy(func(arg db.CreditEarningTxParams) bool {
			return arg.Amount.Equal(decimal.RequireFromString("450.00")) && arg.Method == "GCASH"
		})).Return(db.CreditEarningTxResult{
			Wallet: db.Wallet{ID: walletID, Balance: "450.00"},
			Transaction: db.WalletTransaction{
				ID:       uuid.New(),
				WalletID: walletID,
				Type:     db.TransactionEarning,
				Status:   db.TransactionCompleted,
				Amount:   "450.00",
			},
		}, nil)

		txn, err := service.CreditEarning(ctx, CreditEarningParams{
			OwnerType: db.WalletOwnerProvider,
			OwnerID:   7,
			BookingID: 11,
			Amount:    decimal.RequireFromString("450.00"),
			Method:    "GCASH",
		})
		require.NoError(t, err)
		assert.Equal(t, db.TransactionEarning, txn.Type)

		store.AssertExpectations(t)
	})
}

func TestVerifyLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("missing wallet", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{}, sql.ErrNoRows)

		_, err := service.VerifyLedger(ctx, db.WalletOwnerProvider, 404)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})

	t.Run("balanced ledger", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{ID: walletID, Balance: "160.00"}, nil)
		store.On("SumCompletedTransactions", ctx, walletID).Return("160.00", nil)

		report, err := service.VerifyLedger(ctx, db.WalletOwnerProvider, 7)
		require.NoError(t, err)
		assert.True(t, report.Balanced)
	})

	t.Run("drifted ledger", func(t *testing.T) {
		store := new(MockWalletStore)
		service := newTestService(store)

		walletID := uuid.New()
		store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{ID: walletID, Balance: "160.00"}, nil)
		store.On("SumCompletedTransactions", ctx, walletID).Return("120.00", nil)

		report, err := service.VerifyLedger(ctx, db.WalletOwnerProvider, 7)
		require.NoError(t, err)
		assert.False(t, report.Balanced)
		assert.Equal(t, "120.00", report.LedgerSum.StringFixed(2))
	})
}

func TestNewWalletServiceFeeRate(t *testing.T) {
	store := new(MockWalletStore)
	logger := &logging.Logger{Logger: logrus.New()}

	t.Run("invalid rate falls back to default", func(t *testing.T) {
		service := NewWalletService(store, logger, "not-a-number")
		fee := PlatformFee(decimal.NewFromInt(500), service.feeRate)
		assert.Equal(t, "40.00", fee.StringFixed(2))
	})

	t.Run("negative rate falls back to default", func(t *testing.T) {
		service := NewWalletService(store, logger, "-0.05")
		fee := PlatformFee(decimal.NewFromInt(500), service.feeRate)
		assert.Equal(t, "40.00", fee.StringFixed(2))
	})

	t.Run("custom rate is honored", func(t *testing.T) {
		service := NewWalletService(store, logger, "0.12")
		fee := PlatformFee(decimal.NewFromInt(500), service.feeRate)
		assert.Equal(t, "60.00", fee.StringFixed(2))
	})
}

func TestListTransactionsForUnknownOwner(t *testing.T) {
	ctx := context.Background()
	store := new(MockWalletStore)
	service := newTestService(store)

	store.On("GetWalletByOwner", ctx, mock.Anything).Return(db.Wallet{}, sql.ErrNoRows)

	txns, err := service.ListTransactions(ctx, db.WalletOwnerProvider, 404, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestInsufficientFundsErrorMessage(t *testing.T) {
	err := &db.InsufficientFundsError{
		Required: decimal.RequireFromString("40.00"),
		Current:  decimal.RequireFromString("39.99"),
	}
	assert.True(t, errors.As(error(err), new(*db.InsufficientFundsError)))
	assert.Contains(t, err.Error(), "40.00")
	assert.Contains(t, err.Error(), "39.99")
}
