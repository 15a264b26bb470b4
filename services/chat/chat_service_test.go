package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) GetBooking(ctx context.Context, id int64) (db.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(db.Booking), args.Error(1)
}

func (m *MockChatStore) GetProviderByUserID(ctx context.Context, userID int64) (db.Provider, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(db.Provider), args.Error(1)
}

func (m *MockChatStore) CreateChatMessage(ctx context.Context, arg db.CreateChatMessageParams) (db.ChatMessage, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.ChatMessage), args.Error(1)
}

func (m *MockChatStore) ListChatMessages(ctx context.Context, arg db.ListChatMessagesParams) ([]db.ChatMessage, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.ChatMessage), args.Error(1)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(bookingID int64, payload []byte) {
	m.Called(bookingID, payload)
}

const (
	chatBookingID      = int64(7)
	chatCustomerID     = int64(101)
	chatProviderUserID = int64(202)
	chatProviderID     = int64(31)
	chatStrangerID     = int64(999)
)

func chatBooking(status string) db.Booking {
	return db.Booking{
		ID:         chatBookingID,
		CustomerID: chatCustomerID,
		ProviderID: sql.NullInt64{Int64: chatProviderID, Valid: true},
		Status:     status,
	}
}

func storedMessage(senderID int64, body string) db.ChatMessage {
	return db.ChatMessage{
		ID:        uuid.New(),
		BookingID: chatBookingID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

func newTestChat(t *testing.T) (*ChatService, *MockChatStore, *MockBroadcaster) {
	t.Helper()
	store := new(MockChatStore)
	hub := new(MockBroadcaster)
	m := metrics.New(prometheus.NewRegistry())
	logger := &logging.Logger{Logger: logrus.New()}
	return NewChatService(store, hub, m, logger), store, hub
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("customer sends on active booking and room hears it", func(t *testing.T) {
		svc, store, hub := newTestChat(t)

		row := storedMessage(chatCustomerID, "I am at the gate")
		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("IN_PROGRESS"), nil)
		store.On("CreateChatMessage", ctx, db.CreateChatMessageParams{
			BookingID: chatBookingID,
			SenderID:  chatCustomerID,
			Body:      "I am at the gate",
		}).Return(row, nil)
		hub.On("Broadcast", chatBookingID, mock.MatchedBy(func(payload []byte) bool {
			var decoded MessageModel
			if err := json.Unmarshal(payload, &decoded); err != nil {
				return false
			}
			return decoded.ID == row.ID && decoded.Body == "I am at the gate"
		})).Return()

		model, err := svc.Send(ctx, chatCustomerID, chatBookingID, "I am at the gate")
		require.NoError(t, err)
		assert.Equal(t, row.ID, model.ID)
		hub.AssertExpectations(t)
	})

	t.Run("provider is resolved through their profile", func(t *testing.T) {
		svc, store, hub := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("GetProviderByUserID", ctx, chatProviderUserID).
			Return(db.Provider{ID: chatProviderID, UserID: chatProviderUserID}, nil)
		store.On("CreateChatMessage", ctx, mock.Anything).
			Return(storedMessage(chatProviderUserID, "On my way"), nil)
		hub.On("Broadcast", chatBookingID, mock.Anything).Return()

		_, err := svc.Send(ctx, chatProviderUserID, chatBookingID, "On my way")
		require.NoError(t, err)
	})

	t.Run("message bodies are trimmed", func(t *testing.T) {
		svc, store, hub := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("CreateChatMessage", ctx, mock.MatchedBy(func(arg db.CreateChatMessageParams) bool {
			return arg.Body == "done"
		})).Return(storedMessage(chatCustomerID, "done"), nil)
		hub.On("Broadcast", chatBookingID, mock.Anything).Return()

		_, err := svc.Send(ctx, chatCustomerID, chatBookingID, "  done \n")
		require.NoError(t, err)
	})

	t.Run("chat stays closed before acceptance and after the end", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("PENDING"), nil).Once()
		_, err := svc.Send(ctx, chatCustomerID, chatBookingID, "hello?")
		require.ErrorIs(t, err, ErrChatClosed)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("COMPLETED"), nil).Once()
		_, err = svc.Send(ctx, chatCustomerID, chatBookingID, "thanks again")
		require.ErrorIs(t, err, ErrChatClosed)

		store.AssertNotCalled(t, "CreateChatMessage", mock.Anything, mock.Anything)
	})

	t.Run("strangers cannot write", func(t *testing.T) {
		svc, store, hub := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("IN_PROGRESS"), nil)
		store.On("GetProviderByUserID", ctx, chatStrangerID).Return(db.Provider{}, sql.ErrNoRows)

		_, err := svc.Send(ctx, chatStrangerID, chatBookingID, "let me in")
		require.ErrorIs(t, err, ErrNotYours)
		hub.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})

	t.Run("empty and oversized bodies are rejected before any lookup", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		_, err := svc.Send(ctx, chatCustomerID, chatBookingID, "   ")
		require.ErrorIs(t, err, ErrEmptyMessage)

		_, err = svc.Send(ctx, chatCustomerID, chatBookingID, strings.Repeat("a", maxMessageLen+1))
		require.ErrorIs(t, err, ErrMessageTooLong)

		store.AssertNotCalled(t, "GetBooking", mock.Anything, mock.Anything)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(db.Booking{}, sql.ErrNoRows)

		_, err := svc.Send(ctx, chatCustomerID, chatBookingID, "hello")
		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("store failure surfaces and skips broadcast", func(t *testing.T) {
		svc, store, hub := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("CreateChatMessage", ctx, mock.Anything).
			Return(db.ChatMessage{}, fmt.Errorf("connection refused"))

		_, err := svc.Send(ctx, chatCustomerID, chatBookingID, "hello")
		require.Error(t, err)
		hub.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("participants can read after completion", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		thread := []db.ChatMessage{
			storedMessage(chatCustomerID, "see you at 2pm"),
			storedMessage(chatProviderUserID, "confirmed"),
		}
		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("COMPLETED"), nil)
		store.On("ListChatMessages", ctx, db.ListChatMessagesParams{
			BookingID: chatBookingID,
			Limit:     defaultHistoryLimit,
		}).Return(thread, nil)

		models, err := svc.History(ctx, chatCustomerID, chatBookingID, 0)
		require.NoError(t, err)
		require.Len(t, models, 2)
		assert.Equal(t, "see you at 2pm", models[0].Body)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("ListChatMessages", ctx, db.ListChatMessagesParams{
			BookingID: chatBookingID,
			Limit:     maxHistoryLimit,
		}).Return([]db.ChatMessage{}, nil)

		_, err := svc.History(ctx, chatCustomerID, chatBookingID, 5000)
		require.NoError(t, err)
	})

	t.Run("strangers cannot read", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("GetProviderByUserID", ctx, chatStrangerID).Return(db.Provider{}, sql.ErrNoRows)

		_, err := svc.History(ctx, chatStrangerID, chatBookingID, 20)
		require.ErrorIs(t, err, ErrNotYours)
		store.AssertNotCalled(t, "ListChatMessages", mock.Anything, mock.Anything)
	})
}

func TestCanJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("participant may attach", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)

		require.NoError(t, svc.CanJoin(ctx, chatCustomerID, chatBookingID))
	})

	t.Run("stranger may not", func(t *testing.T) {
		svc, store, _ := newTestChat(t)

		store.On("GetBooking", ctx, chatBookingID).Return(chatBooking("ACCEPTED"), nil)
		store.On("GetProviderByUserID", ctx, chatStrangerID).Return(db.Provider{}, sql.ErrNoRows)

		require.ErrorIs(t, svc.CanJoin(ctx, chatStrangerID, chatBookingID), ErrNotYours)
	})
}
