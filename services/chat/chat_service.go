package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/booking"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
)

const (
	maxMessageLen       = 2000
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ChatStore is the slice of the data layer the chat service needs.
type ChatStore interface {
	GetBooking(ctx context.Context, id int64) (db.Booking, error)
	GetProviderByUserID(ctx context.Context, userID int64) (db.Provider, error)
	CreateChatMessage(ctx context.Context, arg db.CreateChatMessageParams) (db.ChatMessage, error)
	ListChatMessages(ctx context.Context, arg db.ListChatMessagesParams) ([]db.ChatMessage, error)
}

// Broadcaster fans a payload out to every live connection in a booking
// room.
type Broadcaster interface {
	Broadcast(bookingID int64, payload []byte)
}

// ChatService gates the in-booking message thread: only participants
// can write, and only while the booking is active. Reading stays open
// so both sides keep their records after completion.
type ChatService struct {
	store   ChatStore
	hub     Broadcaster
	metrics *metrics.Metrics
	logger  *logging.Logger
}

func NewChatService(store ChatStore, hub Broadcaster, m *metrics.Metrics, logger *logging.Logger) *ChatService {
	return &ChatService{
		store:   store,
		hub:     hub,
		metrics: m,
		logger:  logger,
	}
}

// Send stores a message on an active booking and broadcasts it to the
// booking's room.
func (c *ChatService) Send(ctx context.Context, userID, bookingID int64, body string) (*MessageModel, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > maxMessageLen {
		return nil, ErrMessageTooLong
	}

	b, err := c.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := c.mustBeParticipant(ctx, b, userID); err != nil {
		return nil, err
	}
	if !booking.IsActive(booking.Status(b.Status)) {
		return nil, ErrChatClosed
	}

	row, err := c.store.CreateChatMessage(ctx, db.CreateChatMessageParams{
		BookingID: bookingID,
		SenderID:  userID,
		Body:      body,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store message: %w", err)
	}
	c.metrics.ChatMessages.Inc()

	model := ToMessageModel(row)
	if c.hub != nil {
		payload, err := json.Marshal(model)
		if err != nil {
			c.logger.Error(fmt.Sprintf("could not encode message %v for broadcast: %v", model.ID, err))
		} else {
			c.hub.Broadcast(bookingID, payload)
		}
	}

	return &model, nil
}

// History returns the booking's thread oldest first. Participants can
// read it at any stage, including after completion or cancellation.
func (c *ChatService) History(ctx context.Context, userID, bookingID int64, limit int32) ([]MessageModel, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	b, err := c.fetch(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := c.mustBeParticipant(ctx, b, userID); err != nil {
		return nil, err
	}

	rows, err := c.store.ListChatMessages(ctx, db.ListChatMessagesParams{
		BookingID: bookingID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list messages: %w", err)
	}
	return ToMessageModels(rows), nil
}

// CanJoin reports whether the user may attach a live connection to the
// booking's room. Same rule as History: participants only, any stage.
func (c *ChatService) CanJoin(ctx context.Context, userID, bookingID int64) error {
	b, err := c.fetch(ctx, bookingID)
	if err != nil {
		return err
	}
	return c.mustBeParticipant(ctx, b, userID)
}

func (c *ChatService) fetch(ctx context.Context, id int64) (db.Booking, error) {
	b, err := c.store.GetBooking(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return db.Booking{}, ErrBookingNotFound
		}
		return db.Booking{}, fmt.Errorf("could not fetch booking: %w", err)
	}
	return b, nil
}

func (c *ChatService) mustBeParticipant(ctx context.Context, b db.Booking, userID int64) error {
	if b.CustomerID == userID {
		return nil
	}
	if !b.ProviderID.Valid {
		return ErrNotYours
	}
	provider, err := c.store.GetProviderByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotYours
		}
		return fmt.Errorf("could not resolve provider: %w", err)
	}
	if provider.ID != b.ProviderID.Int64 {
		return ErrNotYours
	}
	return nil
}
