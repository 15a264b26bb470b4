package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReminderStore struct {
	mock.Mock
}

func (m *MockReminderStore) ListRemindableBookings(ctx context.Context, arg db.ListRemindableBookingsParams) ([]db.Booking, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]db.Booking), args.Error(1)
}

func (m *MockReminderStore) MarkReminderSentTx(ctx context.Context, arg db.MarkReminderSentTxParams) (db.MarkReminderSentTxResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(db.MarkReminderSentTxResult), args.Error(1)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushToUser(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	args := m.Called(ctx, userID, title, body, data)
	return args.Error(0)
}

func stockConfig() Config {
	return Config{
		Tick: 5 * time.Minute,
		Windows: []Window{
			{Lead: 50 * time.Minute, Span: 10 * time.Minute},
			{Lead: 10 * time.Minute, Span: 5 * time.Minute},
		},
	}
}

func newTestReminder(t *testing.T, store *MockReminderStore, pusher *MockPusher) *ReminderService {
	t.Helper()

	svc, err := NewReminderService(store, pusher, metrics.New(prometheus.NewRegistry()), &logging.Logger{Logger: logrus.New()}, stockConfig())
	require.NoError(t, err)
	return svc
}

func acceptedBooking(id int64, scheduledAt time.Time) db.Booking {
	return db.Booking{
		ID:            id,
		BookingNumber: fmt.Sprintf("HB-R%v", id),
		CustomerID:    101,
		ProviderID:    sql.NullInt64{Int64: 31, Valid: true},
		ServiceName:   "Swedish Massage",
		Status:        "ACCEPTED",
		ScheduledAt:   scheduledAt,
	}
}

func windowMatcher(base time.Time, leadMin, endMin int) interface{} {
	return mock.MatchedBy(func(arg db.ListRemindableBookingsParams) bool {
		return arg.WindowStart.Equal(base.Add(time.Duration(leadMin)*time.Minute)) &&
			arg.WindowEnd.Equal(base.Add(time.Duration(endMin)*time.Minute))
	})
}

func TestTickScansConfiguredWindows(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	// 55 minutes out: inside [now+50m, now+60m), outside [now+10m, now+15m)
	b := acceptedBooking(1, base.Add(55*time.Minute))

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{b}, nil)
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{}, nil)
	store.On("MarkReminderSentTx", mock.Anything, mock.MatchedBy(func(arg db.MarkReminderSentTxParams) bool {
		return arg.BookingID == b.ID &&
			arg.OffsetMinutes == 60 &&
			arg.UserID == b.CustomerID &&
			arg.Type == KindBookingReminder
	})).Return(db.MarkReminderSentTxResult{}, nil)
	pusher.On("PushToUser", mock.Anything, b.CustomerID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := svc.Tick(context.Background())
	require.NoError(t, err)

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "MarkReminderSentTx", 1)
	pusher.AssertNumberOfCalls(t, "PushToUser", 1)
}

func TestTickDoesNotRenotifyWithinProcess(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	b := acceptedBooking(2, base.Add(55*time.Minute))

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{b}, nil)
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{}, nil)
	store.On("MarkReminderSentTx", mock.Anything, mock.Anything).Return(db.MarkReminderSentTxResult{}, nil)
	pusher.On("PushToUser", mock.Anything, b.CustomerID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.Tick(context.Background()))
	require.NoError(t, svc.Tick(context.Background()))

	// the second tick sees the same booking but the dedupe cache
	// swallows it before the store is touched
	store.AssertNumberOfCalls(t, "MarkReminderSentTx", 1)
	pusher.AssertNumberOfCalls(t, "PushToUser", 1)
}

func TestTickHonoursDurableMarkerAfterRestart(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	// fresh service, empty cache: simulates a restarted process whose
	// previous life already sent this reminder
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	b := acceptedBooking(3, base.Add(55*time.Minute))

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{b}, nil)
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{}, nil)
	store.On("MarkReminderSentTx", mock.Anything, mock.Anything).Return(db.MarkReminderSentTxResult{}, db.ErrReminderAlreadySent)

	require.NoError(t, svc.Tick(context.Background()))

	pusher.AssertNotCalled(t, "PushToUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// and the claim is not retried on the next tick either
	require.NoError(t, svc.Tick(context.Background()))
	store.AssertNumberOfCalls(t, "MarkReminderSentTx", 1)
}

func TestTickIsolatesFailuresPerBooking(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	bad := acceptedBooking(4, base.Add(52*time.Minute))
	good := acceptedBooking(5, base.Add(57*time.Minute))

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{bad, good}, nil)
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{}, nil)
	store.On("MarkReminderSentTx", mock.Anything, mock.MatchedBy(func(arg db.MarkReminderSentTxParams) bool {
		return arg.BookingID == bad.ID
	})).Return(db.MarkReminderSentTxResult{}, fmt.Errorf("deadlock detected"))
	store.On("MarkReminderSentTx", mock.Anything, mock.MatchedBy(func(arg db.MarkReminderSentTxParams) bool {
		return arg.BookingID == good.ID
	})).Return(db.MarkReminderSentTxResult{}, nil)
	pusher.On("PushToUser", mock.Anything, good.CustomerID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// the booking-level failure is contained, the tick itself succeeds
	require.NoError(t, svc.Tick(context.Background()))
	pusher.AssertNumberOfCalls(t, "PushToUser", 1)
}

func TestTickSurfacesScanFailure(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{}, fmt.Errorf("connection refused"))
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{}, nil)

	err := svc.Tick(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestPushFailureDoesNotRetry(t *testing.T) {
	store := new(MockReminderStore)
	pusher := new(MockPusher)
	svc := newTestReminder(t, store, pusher)

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	b := acceptedBooking(6, base.Add(12*time.Minute))

	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 50, 60)).Return([]db.Booking{}, nil)
	store.On("ListRemindableBookings", mock.Anything, windowMatcher(base, 10, 15)).Return([]db.Booking{b}, nil)
	store.On("MarkReminderSentTx", mock.Anything, mock.MatchedBy(func(arg db.MarkReminderSentTxParams) bool {
		return arg.OffsetMinutes == 15
	})).Return(db.MarkReminderSentTxResult{}, nil)
	pusher.On("PushToUser", mock.Anything, b.CustomerID, mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("expo unreachable"))

	require.NoError(t, svc.Tick(context.Background()))

	// the record is durable, so the next tick does not try again
	require.NoError(t, svc.Tick(context.Background()))
	pusher.AssertNumberOfCalls(t, "PushToUser", 1)
}

func TestConfigValidate(t *testing.T) {
	t.Run("rejects a window narrower than the tick", func(t *testing.T) {
		cfg := Config{
			Tick:    10 * time.Minute,
			Windows: []Window{{Lead: 50 * time.Minute, Span: 5 * time.Minute}},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "narrower")
	})

	t.Run("rejects a zero tick", func(t *testing.T) {
		cfg := Config{Tick: 0, Windows: []Window{{Lead: time.Hour, Span: time.Hour}}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty windows", func(t *testing.T) {
		cfg := Config{Tick: 5 * time.Minute}
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts the stock configuration", func(t *testing.T) {
		assert.NoError(t, stockConfig().Validate())
	})

	t.Run("construction fails on a bad configuration", func(t *testing.T) {
		_, err := NewReminderService(new(MockReminderStore), new(MockPusher),
			metrics.New(prometheus.NewRegistry()), &logging.Logger{Logger: logrus.New()},
			Config{Tick: 20 * time.Minute, Windows: []Window{{Lead: 10 * time.Minute, Span: 5 * time.Minute}}})
		assert.Error(t, err)
	})
}

func TestWindowOffset(t *testing.T) {
	assert.Equal(t, int32(60), Window{Lead: 50 * time.Minute, Span: 10 * time.Minute}.Offset())
	assert.Equal(t, int32(15), Window{Lead: 10 * time.Minute, Span: 5 * time.Minute}.Offset())
}

func TestConfigFromApp(t *testing.T) {
	t.Run("falls back to stock values", func(t *testing.T) {
		cfg := ConfigFromApp(&utils.Config{})
		assert.Equal(t, 5*time.Minute, cfg.Tick)
		require.Len(t, cfg.Windows, 2)
		assert.Equal(t, int32(60), cfg.Windows[0].Offset())
		assert.Equal(t, int32(15), cfg.Windows[1].Offset())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("honours configured minutes", func(t *testing.T) {
		cfg := ConfigFromApp(&utils.Config{
			ReminderTickMinutes:      2,
			EarlyReminderLeadMinutes: 100,
			EarlyReminderSpanMinutes: 20,
			FinalReminderLeadMinutes: 25,
			FinalReminderSpanMinutes: 5,
		})
		assert.Equal(t, 2*time.Minute, cfg.Tick)
		assert.Equal(t, int32(120), cfg.Windows[0].Offset())
		assert.Equal(t, int32(30), cfg.Windows[1].Offset())
	})
}
