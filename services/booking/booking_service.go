package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/location"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/HilomPH/Hilom-Backend/services/wallet"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Notification kinds written for booking events. These land in the
// notifications.type column and in the push payload.
const (
	KindBookingRequested = "BOOKING_REQUESTED"
	KindBookingAccepted  = "BOOKING_ACCEPTED"
	KindBookingEnRoute   = "BOOKING_EN_ROUTE"
	KindBookingArrived   = "BOOKING_ARRIVED"
	KindBookingStarted   = "BOOKING_STARTED"
	KindBookingCompleted = "BOOKING_COMPLETED"
	KindBookingCancelled = "BOOKING_CANCELLED"
	KindBookingSOS       = "BOOKING_SOS"
)

const defaultPlatformFeePercent = "10"

// maxNumberAttempts bounds the booking-number collision retry loop.
const maxNumberAttempts = 3

// BookingStore is the slice of the store this service needs. *db.Store
// satisfies it.
type BookingStore interface {
	CreateBooking(ctx context.Context, arg db.CreateBookingParams) (db.Booking, error)
	GetBooking(ctx context.Context, id int64) (db.Booking, error)
	GetBookingByNumber(ctx context.Context, bookingNumber string) (db.Booking, error)
	ListBookingsByCustomer(ctx context.Context, arg db.ListBookingsByCustomerParams) ([]db.Booking, error)
	ListBookingsByProvider(ctx context.Context, arg db.ListBookingsByProviderParams) ([]db.Booking, error)
	TransitionBookingStatus(ctx context.Context, arg db.TransitionBookingStatusParams) (db.Booking, error)
	CompleteBooking(ctx context.Context, id int64) (db.Booking, error)
	CancelBooking(ctx context.Context, arg db.CancelBookingParams) (db.Booking, error)
	UpdateBookingProviderLocation(ctx context.Context, arg db.UpdateBookingProviderLocationParams) (db.Booking, error)
	HideBookingForCustomer(ctx context.Context, arg db.HideBookingForCustomerParams) error
	HideBookingForProvider(ctx context.Context, arg db.HideBookingForProviderParams) error
	GetProvider(ctx context.Context, id int64) (db.Provider, error)
	GetProviderByUserID(ctx context.Context, userID int64) (db.Provider, error)
	CreateSOSAlert(ctx context.Context, arg db.CreateSOSAlertParams) (db.SosAlert, error)
}

// WalletLedger is the slice of the wallet service used to settle money
// when a booking completes. *wallet.WalletService satisfies it.
type WalletLedger interface {
	DeductPlatformFee(ctx context.Context, arg wallet.DeductFeeParams) (*wallet.TransactionModel, error)
	CreditEarning(ctx context.Context, arg wallet.CreditEarningParams) (*wallet.TransactionModel, error)
	AddLifetimeEarnings(ctx context.Context, ownerType string, ownerID int64, amount decimal.Decimal) error
}

// Notifier is the slice of the notification gateway this service uses:
// persisted in-app notifications with push fan-out, direct SMS for the
// safety line, and transactional email.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, kind, title, body string, data map[string]string) error
	SendSMS(ctx context.Context, phoneNumber, message string) error
	EmailUser(ctx context.Context, userID int64, subject, body string) error
}

// LocationCache holds the provider's latest position per booking.
// *location.Cache satisfies it.
type LocationCache interface {
	Put(ctx context.Context, bookingID int64, snap location.Snapshot) error
	Get(ctx context.Context, bookingID int64) (*location.Snapshot, error)
	Delete(ctx context.Context, bookingID int64) error
}

type BookingService struct {
	store      BookingStore
	ledger     WalletLedger
	notifier   Notifier
	locations  LocationCache
	numbers    *NumberGenerator
	metrics    *metrics.Metrics
	logger     *logging.Logger
	feePercent decimal.Decimal
	safetyLine string
}

// NewBookingService builds the lifecycle controller. The platform fee
// percent comes from config; empty or invalid values fall back to the
// default. Zero is a valid percent.
func NewBookingService(
	store BookingStore,
	ledger WalletLedger,
	notifier Notifier,
	locations LocationCache,
	numbers *NumberGenerator,
	m *metrics.Metrics,
	logger *logging.Logger,
	config *utils.Config,
) *BookingService {
	percent, err := decimal.NewFromString(config.PlatformFeePercent)
	if err != nil || percent.IsNegative() {
		if config.PlatformFeePercent != "" {
			logger.Warn(fmt.Sprintf("invalid platform fee percent %q, using default %v", config.PlatformFeePercent, defaultPlatformFeePercent))
		}
		percent = decimal.RequireFromString(defaultPlatformFeePercent)
	}

	return &BookingService{
		store:      store,
		ledger:     ledger,
		notifier:   notifier,
		locations:  locations,
		numbers:    numbers,
		metrics:    m,
		logger:     logger,
		feePercent: percent,
		safetyLine: config.SafetyLinePhone,
	}
}

type CreateParams struct {
	CustomerID      int64
	ProviderID      int64
	ServiceName     string
	PaymentMethod   PaymentMethod
	ServiceAmount   decimal.Decimal
	ScheduledAt     time.Time
	DurationMinutes int32
	Address         string
	Latitude        *float64
	Longitude       *float64
	Notes           string
}

// Create validates the request, splits the money so the parts always
// add back to the service amount, and persists the booking as PENDING.
// The requested provider is notified.
func (s *BookingService) Create(ctx context.Context, arg CreateParams) (*BookingModel, error) {
	if !IsValidPaymentMethod(arg.PaymentMethod) {
		return nil, ErrUnknownPayment
	}
	if !arg.ServiceAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if arg.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !arg.ScheduledAt.After(time.Now()) {
		return nil, ErrScheduleInPast
	}

	provider, err := s.store.GetProvider(ctx, arg.ProviderID)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	} else if err != nil {
		return nil, fmt.Errorf("could not fetch provider: %w", err)
	}

	fee, earning := wallet.SplitServiceAmount(arg.ServiceAmount, s.feePercent)

	params := db.CreateBookingParams{
		CustomerID:      arg.CustomerID,
		ProviderID:      sql.NullInt64{Int64: provider.ID, Valid: true},
		ServiceName:     arg.ServiceName,
		PaymentMethod:   string(arg.PaymentMethod),
		ServiceAmount:   arg.ServiceAmount.StringFixed(2),
		PlatformFee:     fee.StringFixed(2),
		ProviderEarning: earning.StringFixed(2),
		TotalAmount:     arg.ServiceAmount.StringFixed(2),
		ScheduledAt:     arg.ScheduledAt,
		DurationMinutes: arg.DurationMinutes,
		Address:         arg.Address,
		Latitude:        nullFloat(arg.Latitude),
		Longitude:       nullFloat(arg.Longitude),
		Notes:           sql.NullString{String: arg.Notes, Valid: arg.Notes != ""},
	}

	var created db.Booking
	for attempt := 1; ; attempt++ {
		params.BookingNumber, err = s.numbers.Generate()
		if err != nil {
			return nil, err
		}

		created, err = s.store.CreateBooking(ctx, params)
		if err == nil {
			break
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry && attempt < maxNumberAttempts {
			s.logger.Warn(fmt.Sprintf("booking number %v already taken, retrying", params.BookingNumber))
			continue
		}
		return nil, fmt.Errorf("could not create booking: %w", err)
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.Info(fmt.Sprintf("booking %v created for customer %v with provider %v", created.BookingNumber, created.CustomerID, provider.ID))

	s.notify(ctx, provider.UserID, KindBookingRequested, "New booking request",
		fmt.Sprintf("You have a new %v request for %v.", created.ServiceName, created.ScheduledAt.Format(scheduleLayout)),
		bookingData(created))

	return ToBookingModel(created), nil
}

// Get returns a booking to one of its parties.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*BookingModel, error) {
	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partyOf(ctx, b, userID); err != nil {
		return nil, err
	}
	return ToBookingModel(b), nil
}

// GetByNumber resolves a booking by its human-readable reference.
func (s *BookingService) GetByNumber(ctx context.Context, userID int64, number string) (*BookingModel, error) {
	b, err := s.store.GetBookingByNumber(ctx, number)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	} else if err != nil {
		return nil, fmt.Errorf("could not fetch booking: %w", err)
	}
	if _, err := s.partyOf(ctx, b, userID); err != nil {
		return nil, err
	}
	return ToBookingModel(b), nil
}

// ListForCustomer returns the customer's bookings, newest first,
// excluding ones they have hidden.
func (s *BookingService) ListForCustomer(ctx context.Context, customerID int64, limit, offset int32) ([]*BookingModel, error) {
	bookings, err := s.store.ListBookingsByCustomer(ctx, db.ListBookingsByCustomerParams{
		CustomerID: customerID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}
	return ToBookingModels(bookings), nil
}

// ListForProvider returns the bookings assigned to the provider behind
// userID, newest first, excluding ones they have hidden.
func (s *BookingService) ListForProvider(ctx context.Context, userID int64, limit, offset int32) ([]*BookingModel, error) {
	provider, err := s.store.GetProviderByUserID(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotYours
	} else if err != nil {
		return nil, fmt.Errorf("could not fetch provider: %w", err)
	}

	bookings, err := s.store.ListBookingsByProvider(ctx, db.ListBookingsByProviderParams{
		ProviderID: sql.NullInt64{Int64: provider.ID, Valid: true},
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}
	return ToBookingModels(bookings), nil
}

// Accept moves a PENDING booking to ACCEPTED. Only the provider the
// booking was requested from may accept it.
func (s *BookingService) Accept(ctx context.Context, userID, bookingID int64) (*BookingModel, error) {
	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.mustBeProvider(ctx, b, userID); err != nil {
		return nil, err
	}
	if b.Status != string(StatusPending) {
		return nil, NewTransitionError(Status(b.Status), StatusAccepted)
	}

	updated, err := s.transition(ctx, b, StatusAccepted)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.CustomerID, KindBookingAccepted, "Booking accepted",
		fmt.Sprintf("Your %v booking %v has been accepted.", updated.ServiceName, updated.BookingNumber),
		bookingData(updated))

	return ToBookingModel(updated), nil
}

// Cancel ends a booking that has not started yet. Either party may
// cancel while the booking is PENDING or ACCEPTED; a reason is
// required and stored with the canceller.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64, reason string) (*BookingModel, error) {
	if reason == "" {
		return nil, ErrCancelReasonMissing
	}

	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := s.partyOf(ctx, b, userID)
	if err != nil {
		return nil, err
	}
	if !CanCancel(Status(b.Status)) {
		return nil, NewTransitionError(Status(b.Status), StatusCancelled)
	}

	updated, err := s.store.CancelBooking(ctx, db.CancelBookingParams{
		ID:           b.ID,
		CancelReason: sql.NullString{String: reason, Valid: true},
		CancelledBy:  sql.NullInt64{Int64: userID, Valid: true},
	})
	if err == sql.ErrNoRows {
		return nil, s.staleTransition(ctx, b.ID, Status(b.Status), StatusCancelled)
	} else if err != nil {
		return nil, fmt.Errorf("could not cancel booking: %w", err)
	}

	s.metrics.StatusTransitions.WithLabelValues(string(StatusCancelled)).Inc()
	s.logger.Info(fmt.Sprintf("booking %v cancelled by user %v: %v", updated.BookingNumber, userID, reason))

	if err := s.locations.Delete(ctx, b.ID); err != nil {
		s.logger.Warn(fmt.Sprintf("could not clear location for booking %v: %v", b.ID, err))
	}

	if other, err := s.counterpartUserID(ctx, updated, actor); err == nil {
		s.notify(ctx, other, KindBookingCancelled, "Booking cancelled",
			fmt.Sprintf("Booking %v was cancelled: %v", updated.BookingNumber, reason),
			bookingData(updated))
	}

	subject := fmt.Sprintf("Booking %v cancelled", updated.BookingNumber)
	body := fmt.Sprintf("Your %v booking scheduled for %v has been cancelled. Reason: %v",
		updated.ServiceName, updated.ScheduledAt.Format(scheduleLayout), reason)
	if err := s.notifier.EmailUser(ctx, updated.CustomerID, subject, body); err != nil {
		s.logger.Warn(fmt.Sprintf("could not email cancellation notice for booking %v: %v", updated.BookingNumber, err))
	}

	return ToBookingModel(updated), nil
}

// UpdateStatus advances the booking exactly one step along the forward
// path. Only the assigned provider may advance it. Completing a
// booking also settles money: on CASH the platform fee is deducted
// from the provider's wallet (a short balance is surfaced but does not
// undo completion), on any other method the provider earning is
// credited, and lifetime earnings are bumped either way.
func (s *BookingService) UpdateStatus(ctx context.Context, userID, bookingID int64, next Status) (*BookingModel, error) {
	if !IsValidStatus(next) {
		return nil, ErrUnknownStatus
	}

	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.mustBeProvider(ctx, b, userID); err != nil {
		return nil, err
	}
	if !CanProgress(Status(b.Status), next) {
		return nil, NewTransitionError(Status(b.Status), next)
	}

	var updated db.Booking
	if next == StatusCompleted {
		updated, err = s.store.CompleteBooking(ctx, b.ID)
	} else {
		updated, err = s.transitionRaw(ctx, b, next)
	}
	if err == sql.ErrNoRows {
		return nil, s.staleTransition(ctx, b.ID, Status(b.Status), next)
	} else if err != nil {
		return nil, fmt.Errorf("could not update booking status: %w", err)
	}

	s.metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	model := ToBookingModel(updated)

	if next == StatusCompleted {
		s.settleCompletion(ctx, updated, model)
		if err := s.locations.Delete(ctx, b.ID); err != nil {
			s.logger.Warn(fmt.Sprintf("could not clear location for booking %v: %v", b.ID, err))
		}
	}

	kind, title, body := progressNotice(updated)
	if kind != "" {
		s.notify(ctx, updated.CustomerID, kind, title, body, bookingData(updated))
	}

	return model, nil
}

// UpdateLocation records the provider's current position while the
// booking is active. The snapshot is written through to the cache for
// cheap polling and to the booking row as the durable latest point.
func (s *BookingService) UpdateLocation(ctx context.Context, userID, bookingID int64, lat, lng float64) (*BookingModel, error) {
	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.mustBeProvider(ctx, b, userID); err != nil {
		return nil, err
	}
	if !IsActive(Status(b.Status)) {
		return nil, ErrBookingNotActive
	}

	snap := location.Snapshot{Latitude: lat, Longitude: lng, RecordedAt: time.Now().UTC()}
	if err := s.locations.Put(ctx, b.ID, snap); err != nil {
		s.logger.Warn(fmt.Sprintf("could not cache location for booking %v: %v", b.ID, err))
	}

	updated, err := s.store.UpdateBookingProviderLocation(ctx, db.UpdateBookingProviderLocationParams{
		ID:          b.ID,
		ProviderLat: sql.NullFloat64{Float64: lat, Valid: true},
		ProviderLng: sql.NullFloat64{Float64: lng, Valid: true},
	})
	if err != nil {
		return nil, fmt.Errorf("could not store location: %w", err)
	}

	return ToBookingModel(updated), nil
}

// Location returns the provider's latest known position for a party.
// The cache is tried first; the booking row is the fallback once the
// cache entry has expired.
func (s *BookingService) Location(ctx context.Context, userID, bookingID int64) (*location.Snapshot, error) {
	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partyOf(ctx, b, userID); err != nil {
		return nil, err
	}

	snap, err := s.locations.Get(ctx, b.ID)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("could not read cached location for booking %v: %v", b.ID, err))
	}
	if snap != nil {
		return snap, nil
	}

	if b.ProviderLat.Valid && b.ProviderLng.Valid {
		return &location.Snapshot{
			Latitude:   b.ProviderLat.Float64,
			Longitude:  b.ProviderLng.Float64,
			RecordedAt: b.ProviderLocatedAt.Time,
		}, nil
	}
	return nil, ErrNoLocation
}

type SOSParams struct {
	BookingID int64
	RaisedBy  int64
	Latitude  *float64
	Longitude *float64
	Note      string
}

// TriggerSOS raises a safety alert on an active booking. The alert is
// persisted first; the SMS to the safety line and the push to the
// other party are best effort and never undo it. The booking status is
// untouched.
func (s *BookingService) TriggerSOS(ctx context.Context, arg SOSParams) (*SOSAlertModel, error) {
	b, err := s.fetch(ctx, arg.BookingID)
	if err != nil {
		return nil, err
	}
	actor, err := s.partyOf(ctx, b, arg.RaisedBy)
	if err != nil {
		return nil, err
	}
	if !IsActive(Status(b.Status)) {
		return nil, ErrBookingNotActive
	}

	alert, err := s.store.CreateSOSAlert(ctx, db.CreateSOSAlertParams{
		BookingID: b.ID,
		RaisedBy:  arg.RaisedBy,
		Latitude:  nullFloat(arg.Latitude),
		Longitude: nullFloat(arg.Longitude),
		Note:      sql.NullString{String: arg.Note, Valid: arg.Note != ""},
	})
	if err != nil {
		return nil, fmt.Errorf("could not record SOS alert: %w", err)
	}

	s.metrics.SOSAlerts.Inc()
	s.logger.Warn(fmt.Sprintf("SOS raised on booking %v by user %v", b.BookingNumber, arg.RaisedBy))

	if s.safetyLine == "" {
		s.logger.Warn("no safety line configured, SOS SMS skipped")
	} else {
		message := fmt.Sprintf("SOS on booking %v (user %v) at %v", b.BookingNumber, arg.RaisedBy, b.Address)
		if alert.Latitude.Valid && alert.Longitude.Valid {
			message = fmt.Sprintf("%v [%.5f,%.5f]", message, alert.Latitude.Float64, alert.Longitude.Float64)
		}
		if err := s.notifier.SendSMS(ctx, s.safetyLine, message); err != nil {
			s.logger.Error(fmt.Sprintf("could not send SOS SMS for booking %v: %v", b.BookingNumber, err))
		}
	}

	if other, err := s.counterpartUserID(ctx, b, actor); err == nil {
		s.notify(ctx, other, KindBookingSOS, "Safety alert",
			fmt.Sprintf("A safety alert was raised on booking %v.", b.BookingNumber),
			bookingData(b))
	}

	return ToSOSAlertModel(alert), nil
}

// Hide removes a booking from the caller's list without touching the
// record itself. Hiding twice is a no-op.
func (s *BookingService) Hide(ctx context.Context, userID, bookingID int64) error {
	b, err := s.fetch(ctx, bookingID)
	if err != nil {
		return err
	}

	actor, err := s.partyOf(ctx, b, userID)
	if err != nil {
		return err
	}

	if actor == partyCustomer {
		err = s.store.HideBookingForCustomer(ctx, db.HideBookingForCustomerParams{
			ID:         b.ID,
			CustomerID: userID,
		})
	} else {
		err = s.store.HideBookingForProvider(ctx, db.HideBookingForProviderParams{
			ID:         b.ID,
			ProviderID: b.ProviderID,
		})
	}
	if err != nil {
		return fmt.Errorf("could not hide booking: %w", err)
	}
	return nil
}

// settleCompletion runs the money side effects of a completed booking.
// CASH bookings owe the platform its cut from the provider's wallet;
// card and e-wallet bookings were collected by the platform, so the
// provider earning is paid out instead. Failures here are logged and
// surfaced on the model but never roll the completion back.
func (s *BookingService) settleCompletion(ctx context.Context, b db.Booking, model *BookingModel) {
	ownerType, ownerID, err := s.walletOwner(ctx, b)
	if err != nil {
		s.logger.Error(fmt.Sprintf("could not resolve wallet owner for booking %v: %v", b.BookingNumber, err))
		return
	}

	serviceAmount, err := decimal.NewFromString(b.ServiceAmount)
	if err != nil {
		s.logger.Error(fmt.Sprintf("could not parse service amount %q for booking %v: %v", b.ServiceAmount, b.BookingNumber, err))
		return
	}
	earning, err := decimal.NewFromString(b.ProviderEarning)
	if err != nil {
		s.logger.Error(fmt.Sprintf("could not parse provider earning %q for booking %v: %v", b.ProviderEarning, b.BookingNumber, err))
		return
	}

	if PaymentMethod(b.PaymentMethod) == PaymentCash {
		txn, err := s.ledger.DeductPlatformFee(ctx, wallet.DeductFeeParams{
			OwnerType:     ownerType,
			OwnerID:       ownerID,
			BookingID:     b.ID,
			ServiceAmount: serviceAmount,
			Method:        string(PaymentCash),
			Description:   fmt.Sprintf("Platform fee for booking %v", b.BookingNumber),
		})
		switch {
		case err == nil && txn != nil:
			s.metrics.WalletTxns.WithLabelValues(db.TransactionPlatformFee).Inc()
			charged := decimal.RequireFromString(txn.Amount).Abs()
			model.FeeSettlement = &FeeSettlementModel{
				Settled: true,
				Amount:  charged.StringFixed(2),
			}
		case err == nil:
			// fee rate rounded to zero, nothing to collect
		default:
			if short, ok := err.(*db.InsufficientFundsError); ok {
				s.logger.Warn(fmt.Sprintf("booking %v completed with unpaid platform fee: %v", b.BookingNumber, short))
				model.FeeSettlement = &FeeSettlementModel{
					Settled:     false,
					Amount:      short.Required.StringFixed(2),
					Outstanding: short.Required.Sub(short.Current).StringFixed(2),
					Detail:      "wallet balance below platform fee",
				}
			} else {
				s.logger.Error(fmt.Sprintf("could not deduct platform fee for booking %v: %v", b.BookingNumber, err))
				model.FeeSettlement = &FeeSettlementModel{
					Settled: false,
					Detail:  "platform fee deduction failed",
				}
			}
		}
	} else {
		_, err := s.ledger.CreditEarning(ctx, wallet.CreditEarningParams{
			OwnerType:   ownerType,
			OwnerID:     ownerID,
			BookingID:   b.ID,
			Amount:      earning,
			Method:      b.PaymentMethod,
			Description: fmt.Sprintf("Earning for booking %v", b.BookingNumber),
		})
		if err != nil {
			s.logger.Error(fmt.Sprintf("could not credit earning for booking %v: %v", b.BookingNumber, err))
		} else {
			s.metrics.WalletTxns.WithLabelValues(db.TransactionEarning).Inc()
		}
	}

	if err := s.ledger.AddLifetimeEarnings(ctx, ownerType, ownerID, earning); err != nil {
		s.logger.Error(fmt.Sprintf("could not record lifetime earnings for booking %v: %v", b.BookingNumber, err))
	}

	subject := fmt.Sprintf("Receipt for booking %v", b.BookingNumber)
	body := fmt.Sprintf("Your %v booking on %v is complete. Amount: %v, paid via %v. Thank you for booking with Hilom.",
		b.ServiceName, b.ScheduledAt.Format(scheduleLayout), b.TotalAmount, b.PaymentMethod)
	if err := s.notifier.EmailUser(ctx, b.CustomerID, subject, body); err != nil {
		s.logger.Warn(fmt.Sprintf("could not email receipt for booking %v: %v", b.BookingNumber, err))
	}
}

type party int

const (
	partyCustomer party = iota + 1
	partyProvider
)

// partyOf resolves which side of the booking userID is on, or
// ErrNotYours for everyone else.
func (s *BookingService) partyOf(ctx context.Context, b db.Booking, userID int64) (party, error) {
	if b.CustomerID == userID {
		return partyCustomer, nil
	}
	if b.ProviderID.Valid {
		provider, err := s.store.GetProviderByUserID(ctx, userID)
		if err == sql.ErrNoRows {
			return 0, ErrNotYours
		} else if err != nil {
			return 0, fmt.Errorf("could not fetch provider: %w", err)
		}
		if provider.ID == b.ProviderID.Int64 {
			return partyProvider, nil
		}
	}
	return 0, ErrNotYours
}

func (s *BookingService) mustBeProvider(ctx context.Context, b db.Booking, userID int64) error {
	actor, err := s.partyOf(ctx, b, userID)
	if err != nil {
		return err
	}
	if actor != partyProvider {
		return ErrNotYours
	}
	return nil
}

// counterpartUserID finds the user on the other side of the booking
// from actor.
func (s *BookingService) counterpartUserID(ctx context.Context, b db.Booking, actor party) (int64, error) {
	if actor == partyProvider {
		return b.CustomerID, nil
	}
	if !b.ProviderID.Valid {
		return 0, ErrNoProviderAssigned
	}
	provider, err := s.store.GetProvider(ctx, b.ProviderID.Int64)
	if err != nil {
		return 0, fmt.Errorf("could not fetch provider: %w", err)
	}
	return provider.UserID, nil
}

// walletOwner picks the wallet a completed booking settles against:
// the shop's wallet when the provider works under one, otherwise the
// provider's own.
func (s *BookingService) walletOwner(ctx context.Context, b db.Booking) (string, int64, error) {
	if !b.ProviderID.Valid {
		return "", 0, ErrNoProviderAssigned
	}
	provider, err := s.store.GetProvider(ctx, b.ProviderID.Int64)
	if err != nil {
		return "", 0, fmt.Errorf("could not fetch provider: %w", err)
	}
	if provider.ShopID.Valid {
		return db.WalletOwnerShop, provider.ShopID.Int64, nil
	}
	return db.WalletOwnerProvider, provider.ID, nil
}

func (s *BookingService) fetch(ctx context.Context, id int64) (db.Booking, error) {
	b, err := s.store.GetBooking(ctx, id)
	if err == sql.ErrNoRows {
		return db.Booking{}, ErrBookingNotFound
	} else if err != nil {
		return db.Booking{}, fmt.Errorf("could not fetch booking: %w", err)
	}
	return b, nil
}

// transition runs the conditional status update and bumps the metric.
func (s *BookingService) transition(ctx context.Context, b db.Booking, next Status) (db.Booking, error) {
	updated, err := s.transitionRaw(ctx, b, next)
	if err == sql.ErrNoRows {
		return db.Booking{}, s.staleTransition(ctx, b.ID, Status(b.Status), next)
	} else if err != nil {
		return db.Booking{}, fmt.Errorf("could not update booking status: %w", err)
	}
	s.metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	return updated, nil
}

func (s *BookingService) transitionRaw(ctx context.Context, b db.Booking, next Status) (db.Booking, error) {
	return s.store.TransitionBookingStatus(ctx, db.TransitionBookingStatusParams{
		NextStatus:    string(next),
		ID:            b.ID,
		CurrentStatus: b.Status,
	})
}

// staleTransition builds the rejection for a conditional update that
// matched no row: the booking moved between our read and our write, so
// report the state it is actually in now.
func (s *BookingService) staleTransition(ctx context.Context, bookingID int64, from, to Status) error {
	if fresh, err := s.store.GetBooking(ctx, bookingID); err == nil {
		return NewTransitionError(Status(fresh.Status), to)
	}
	return NewTransitionError(from, to)
}

// notify records and pushes a booking event. Delivery problems are
// logged and swallowed; they never fail the booking operation.
func (s *BookingService) notify(ctx context.Context, userID int64, kind, title, body string, data map[string]string) {
	if err := s.notifier.NotifyUser(ctx, userID, kind, title, body, data); err != nil {
		s.logger.Error(fmt.Sprintf("could not notify user %v about %v: %v", userID, kind, err))
	}
}

const scheduleLayout = "Jan 2, 2006 3:04 PM"

func progressNotice(b db.Booking) (kind, title, body string) {
	switch Status(b.Status) {
	case StatusAccepted:
		return KindBookingAccepted, "Booking accepted",
			fmt.Sprintf("Your %v booking %v has been accepted.", b.ServiceName, b.BookingNumber)
	case StatusProviderEnRoute:
		return KindBookingEnRoute, "Provider on the way",
			fmt.Sprintf("Your provider is on the way for booking %v.", b.BookingNumber)
	case StatusProviderArrived:
		return KindBookingArrived, "Provider arrived",
			fmt.Sprintf("Your provider has arrived for booking %v.", b.BookingNumber)
	case StatusInProgress:
		return KindBookingStarted, "Session started",
			fmt.Sprintf("Your %v session has started.", b.ServiceName)
	case StatusCompleted:
		return KindBookingCompleted, "Booking completed",
			fmt.Sprintf("Your %v booking %v is complete.", b.ServiceName, b.BookingNumber)
	}
	return "", "", ""
}

func bookingData(b db.Booking) map[string]string {
	return map[string]string{
		"booking_id":     strconv.FormatInt(b.ID, 10),
		"booking_number": b.BookingNumber,
		"status":         b.Status,
	}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
