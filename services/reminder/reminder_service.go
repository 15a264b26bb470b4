package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/tasks"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/patrickmn/go-cache"
	"github.com/sqlc-dev/pqtype"
)

const KindBookingReminder = "BOOKING_REMINDER"

const taskID = "booking-reminders"

// retainPastSchedule is how long a dedupe entry outlives its booking's
// scheduled time before the cache may evict it.
const retainPastSchedule = 2 * time.Hour

const (
	defaultTickMinutes      = 5
	defaultEarlyLeadMinutes = 50
	defaultEarlySpanMinutes = 10
	defaultFinalLeadMinutes = 10
	defaultFinalSpanMinutes = 5
)

// Window is one reminder scan: bookings whose start falls inside
// [now+Lead, now+Lead+Span) get the reminder for this window. The
// upper bound is the nominal offset users think of ("one hour
// before"), and the span below it absorbs tick jitter.
type Window struct {
	Lead time.Duration
	Span time.Duration
}

// Offset is the nominal minutes-before-start this window reminds at.
// It also keys the at-most-once marker.
func (w Window) Offset() int32 {
	return int32((w.Lead + w.Span) / time.Minute)
}

type Config struct {
	Tick    time.Duration
	Windows []Window
}

// Validate rejects configurations that would silently skip bookings: a
// window narrower than the tick leaves gaps between consecutive scans.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("reminder tick must be positive, got %v", c.Tick)
	}
	if len(c.Windows) == 0 {
		return fmt.Errorf("no reminder windows configured")
	}
	for _, w := range c.Windows {
		if w.Lead < 0 || w.Span <= 0 {
			return fmt.Errorf("reminder window (lead %v, span %v) is not usable", w.Lead, w.Span)
		}
		if w.Span < c.Tick {
			return fmt.Errorf("reminder window span %v is narrower than the %v tick, bookings could be missed", w.Span, c.Tick)
		}
	}
	return nil
}

// ConfigFromApp builds the scan configuration from app config, falling
// back to the stock 60-minute and 15-minute reminders on a 5-minute
// tick wherever a value is unset.
func ConfigFromApp(config *utils.Config) Config {
	return Config{
		Tick: minutesOr(config.ReminderTickMinutes, defaultTickMinutes),
		Windows: []Window{
			{
				Lead: minutesOr(config.EarlyReminderLeadMinutes, defaultEarlyLeadMinutes),
				Span: minutesOr(config.EarlyReminderSpanMinutes, defaultEarlySpanMinutes),
			},
			{
				Lead: minutesOr(config.FinalReminderLeadMinutes, defaultFinalLeadMinutes),
				Span: minutesOr(config.FinalReminderSpanMinutes, defaultFinalSpanMinutes),
			},
		},
	}
}

func minutesOr(minutes, fallback int) time.Duration {
	if minutes <= 0 {
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// ReminderStore is the slice of the store the scheduler needs.
// *db.Store satisfies it.
type ReminderStore interface {
	ListRemindableBookings(ctx context.Context, arg db.ListRemindableBookingsParams) ([]db.Booking, error)
	MarkReminderSentTx(ctx context.Context, arg db.MarkReminderSentTxParams) (db.MarkReminderSentTxResult, error)
}

// Pusher delivers the push half of a reminder. The persisted record is
// already written inside the reminder transaction, so this must not
// write another one.
type Pusher interface {
	PushToUser(ctx context.Context, userID int64, title, body string, data map[string]string) error
}

// ReminderService scans upcoming accepted bookings on a fixed tick and
// reminds the customer at each configured offset, at most once per
// booking and offset. The booking_reminders row is the durable
// guarantee; the in-process cache only saves the round trip when the
// same instance sees a booking again on the next tick.
type ReminderService struct {
	store   ReminderStore
	pusher  Pusher
	seen    *cache.Cache
	config  Config
	metrics *metrics.Metrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewReminderService(store ReminderStore, pusher Pusher, m *metrics.Metrics, logger *logging.Logger, config Config) (*ReminderService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ReminderService{
		store:   store,
		pusher:  pusher,
		seen:    cache.New(cache.NoExpiration, 10*time.Minute),
		config:  config,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// RegisterWith puts the scan on the recurring task runner, first tick
// after one interval.
func (s *ReminderService) RegisterWith(scheduler *tasks.TaskScheduler) error {
	if _, err := scheduler.AddTask(taskID, "booking reminder scan", s.Tick, s.config.Tick); err != nil {
		return err
	}
	return scheduler.ScheduleTask(taskID, s.config.Tick)
}

// Tick runs every configured window once. A failing window is logged
// and counted but never stops the other windows.
func (s *ReminderService) Tick(ctx context.Context) error {
	now := s.now()

	failures := 0
	for _, w := range s.config.Windows {
		if err := s.scan(ctx, now, w); err != nil {
			s.logger.Error(fmt.Sprintf("reminder scan at %vm failed: %v", w.Offset(), err))
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d reminder scans failed", failures, len(s.config.Windows))
	}
	return nil
}

func (s *ReminderService) scan(ctx context.Context, now time.Time, w Window) error {
	bookings, err := s.store.ListRemindableBookings(ctx, db.ListRemindableBookingsParams{
		WindowStart: now.Add(w.Lead),
		WindowEnd:   now.Add(w.Lead + w.Span),
	})
	if err != nil {
		return fmt.Errorf("could not list bookings: %w", err)
	}

	for _, b := range bookings {
		s.remind(ctx, b, w.Offset())
	}
	return nil
}

// remind claims the (booking, offset) slot and delivers the reminder.
// Every failure is contained here so one bad booking cannot poison the
// rest of the scan.
func (s *ReminderService) remind(ctx context.Context, b db.Booking, offset int32) {
	key := seenKey(b.ID, offset)
	if _, hit := s.seen.Get(key); hit {
		return
	}

	title := "Upcoming booking"
	body := fmt.Sprintf("Your %v booking %v starts in about %v minutes.", b.ServiceName, b.BookingNumber, offset)
	data := map[string]string{
		"booking_id":     strconv.FormatInt(b.ID, 10),
		"booking_number": b.BookingNumber,
		"offset_minutes": strconv.Itoa(int(offset)),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(fmt.Sprintf("could not encode reminder payload for booking %v: %v", b.ID, err))
		return
	}

	_, err = s.store.MarkReminderSentTx(ctx, db.MarkReminderSentTxParams{
		BookingID:     b.ID,
		OffsetMinutes: offset,
		UserID:        b.CustomerID,
		Type:          KindBookingReminder,
		Title:         title,
		Body:          body,
		Data:          pqtype.NullRawMessage{RawMessage: payload, Valid: true},
	})
	if err == db.ErrReminderAlreadySent {
		s.remember(key, b.ScheduledAt)
		s.metrics.RemindersSkipped.Inc()
		return
	} else if err != nil {
		s.logger.Error(fmt.Sprintf("could not record reminder for booking %v at %vm: %v", b.ID, offset, err))
		return
	}

	s.remember(key, b.ScheduledAt)
	s.metrics.RemindersSent.WithLabelValues(strconv.Itoa(int(offset))).Inc()
	s.logger.Info(fmt.Sprintf("reminded customer %v about booking %v (%vm)", b.CustomerID, b.BookingNumber, offset))

	if err := s.pusher.PushToUser(ctx, b.CustomerID, title, body, data); err != nil {
		s.logger.Error(fmt.Sprintf("could not push reminder for booking %v: %v", b.ID, err))
	}
}

// remember marks the pair as handled in this process until well past
// the booking's start, then lets the cache reclaim the entry.
func (s *ReminderService) remember(key string, scheduledAt time.Time) {
	ttl := scheduledAt.Add(retainPastSchedule).Sub(s.now())
	if ttl <= 0 {
		return
	}
	s.seen.Set(key, struct{}{}, ttl)
}

func seenKey(bookingID int64, offset int32) string {
	return fmt.Sprintf("%v:%v", bookingID, offset)
}
