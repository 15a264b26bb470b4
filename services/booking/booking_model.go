package booking

import (
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
)

// BookingModel is the outward shape of a booking. Money fields stay as
// the ledger's fixed-point strings; nullable columns become pointers so
// they drop out of JSON when unset.
type BookingModel struct {
	ID              int64         `json:"id"`
	BookingNumber   string        `json:"booking_number"`
	CustomerID      int64         `json:"customer_id"`
	ProviderID      *int64        `json:"provider_id,omitempty"`
	ServiceName     string        `json:"service_name"`
	Status          Status        `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ServiceAmount   string        `json:"service_amount"`
	PlatformFee     string        `json:"platform_fee"`
	ProviderEarning string        `json:"provider_earning"`
	TotalAmount     string        `json:"total_amount"`
	ScheduledAt     time.Time     `json:"scheduled_at"`
	DurationMinutes int32         `json:"duration_minutes"`
	Address         string        `json:"address"`
	Latitude        *float64      `json:"latitude,omitempty"`
	Longitude       *float64      `json:"longitude,omitempty"`
	ProviderLat     *float64      `json:"provider_lat,omitempty"`
	ProviderLng     *float64      `json:"provider_lng,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	CancelledBy     *int64        `json:"cancelled_by,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	// FeeSettlement reports the outcome of the cash platform-fee
	// deduction when the booking completes. Only set on completion.
	FeeSettlement *FeeSettlementModel `json:"fee_settlement,omitempty"`
}

// FeeSettlementModel describes what happened to the platform fee when a
// cash booking completed. When the provider's wallet could not cover
// the fee, Settled is false and Outstanding carries the unpaid amount.
type FeeSettlementModel struct {
	Settled     bool   `json:"settled"`
	Amount      string `json:"amount"`
	Outstanding string `json:"outstanding,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

func ToBookingModel(b db.Booking) *BookingModel {
	model := &BookingModel{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		CustomerID:      b.CustomerID,
		ServiceName:     b.ServiceName,
		Status:          Status(b.Status),
		PaymentMethod:   PaymentMethod(b.PaymentMethod),
		ServiceAmount:   b.ServiceAmount,
		PlatformFee:     b.PlatformFee,
		ProviderEarning: b.ProviderEarning,
		TotalAmount:     b.TotalAmount,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		Address:         b.Address,
		Notes:           b.Notes.String,
		CancelReason:    b.CancelReason.String,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.ProviderID.Valid {
		model.ProviderID = &b.ProviderID.Int64
	}
	if b.Latitude.Valid {
		model.Latitude = &b.Latitude.Float64
	}
	if b.Longitude.Valid {
		model.Longitude = &b.Longitude.Float64
	}
	if b.ProviderLat.Valid {
		model.ProviderLat = &b.ProviderLat.Float64
	}
	if b.ProviderLng.Valid {
		model.ProviderLng = &b.ProviderLng.Float64
	}
	if b.CancelledBy.Valid {
		model.CancelledBy = &b.CancelledBy.Int64
	}
	if b.CompletedAt.Valid {
		model.CompletedAt = &b.CompletedAt.Time
	}
	if b.CancelledAt.Valid {
		model.CancelledAt = &b.CancelledAt.Time
	}

	return model
}

func ToBookingModels(bookings []db.Booking) []*BookingModel {
	models := make([]*BookingModel, 0, len(bookings))
	for _, b := range bookings {
		models = append(models, ToBookingModel(b))
	}
	return models
}

type SOSAlertModel struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	RaisedBy  int64     `json:"raised_by"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSOSAlertModel(a db.SosAlert) *SOSAlertModel {
	model := &SOSAlertModel{
		ID:        a.ID,
		BookingID: a.BookingID,
		RaisedBy:  a.RaisedBy,
		Note:      a.Note.String,
		CreatedAt: a.CreatedAt,
	}
	if a.Latitude.Valid {
		model.Latitude = &a.Latitude.Float64
	}
	if a.Longitude.Valid {
		model.Longitude = &a.Longitude.Float64
	}
	return model
}
