package wallet

import (
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BalanceModel struct {
	WalletID         uuid.UUID       `json:"wallet_id"`
	OwnerType        string          `json:"owner_type"`
	OwnerID          int64           `json:"owner_id"`
	Balance          decimal.Decimal `json:"balance"`
	LifetimeEarnings decimal.Decimal `json:"lifetime_earnings"`
	PendingTopUps    decimal.Decimal `json:"pending_top_ups"`
}

type FeeCheckModel struct {
	HasEnough bool            `json:"has_enough"`
	Required  decimal.Decimal `json:"required"`
	Current   decimal.Decimal `json:"current"`
}

type LedgerReport struct {
	WalletID  uuid.UUID       `json:"wallet_id"`
	Balance   decimal.Decimal `json:"balance"`
	LedgerSum decimal.Decimal `json:"ledger_sum"`
	Balanced  bool            `json:"balanced"`
}

type TransactionModel struct {
	ID            uuid.UUID `json:"id"`
	WalletID      uuid.UUID `json:"wallet_id"`
	BookingID     int64     `json:"booking_id,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	Method        string    `json:"method,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToTransactionModel(t db.WalletTransaction) *TransactionModel {
	return &TransactionModel{
		ID:            t.ID,
		WalletID:      t.WalletID,
		BookingID:     t.BookingID.Int64,
		Type:          t.Type,
		Status:        t.Status,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Method:        t.Method.String,
		Reference:     t.Reference.String,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

func ToTransactionModels(ts []db.WalletTransaction) []*TransactionModel {
	models := make([]*TransactionModel, 0, len(ts))
	for _, t := range ts {
		models = append(models, ToTransactionModel(t))
	}
	return models
}
