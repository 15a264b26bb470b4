package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"
)

// ErrReminderAlreadySent means another tick (possibly on another
// instance) already claimed this booking/offset pair.
var ErrReminderAlreadySent = errors.New("reminder already sent for this booking and offset")

type MarkReminderSentTxParams struct {
	BookingID     int64
	OffsetMinutes int32
	UserID        int64
	Type          string
	Title         string
	Body          string
	Data          pqtype.NullRawMessage
}

type MarkReminderSentTxResult struct {
	Reminder     BookingReminder
	Notification Notification
}

// MarkReminderSentTx claims the reminder slot and writes the user's
// notification record in one transaction. The unique index on
// booking_reminders makes the claim at-most-once: a duplicate insert
// rolls the whole thing back and surfaces as ErrReminderAlreadySent.
func (s *Store) MarkReminderSentTx(ctx context.Context, arg MarkReminderSentTxParams) (MarkReminderSentTxResult, error) {
	var result MarkReminderSentTxResult

	err := s.ExecTx(ctx, func(q *Queries) error {
		var err error

		result.Reminder, err = q.CreateBookingReminder(ctx, CreateBookingReminderParams{
			BookingID:     arg.BookingID,
			OffsetMinutes: arg.OffsetMinutes,
		})
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == DuplicateEntry {
				return ErrReminderAlreadySent
			}
			return fmt.Errorf("create reminder marker: %w", err)
		}

		result.Notification, err = q.CreateNotification(ctx, CreateNotificationParams{
			UserID: arg.UserID,
			Title:  arg.Title,
			Body:   arg.Body,
			Type:   arg.Type,
			Data:   arg.Data,
		})
		if err != nil {
			return fmt.Errorf("create notification record: %w", err)
		}

		return nil
	})

	return result, err
}
