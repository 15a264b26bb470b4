package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/HilomPH/Hilom-Backend/services/notification/notification_channel"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/sqlc-dev/pqtype"
)

var (
	ErrUnknownProvider      = fmt.Errorf("push provider must be expo or fcm")
	ErrNotificationNotFound = fmt.Errorf("notification not found")
)

// NotificationStore is the slice of the data layer the notification
// service reads and writes.
type NotificationStore interface {
	CreateNotification(ctx context.Context, arg db.CreateNotificationParams) (db.Notification, error)
	ListNotificationsByUser(ctx context.Context, arg db.ListNotificationsByUserParams) ([]db.Notification, error)
	MarkNotificationRead(ctx context.Context, arg db.MarkNotificationReadParams) (db.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	DeleteNotification(ctx context.Context, arg db.DeleteNotificationParams) error
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)
	UpsertPushToken(ctx context.Context, arg db.UpsertPushTokenParams) (db.UserPushToken, error)
	ListUserPushTokens(ctx context.Context, userID int64) ([]db.UserPushToken, error)
	DeletePushToken(ctx context.Context, arg db.DeletePushTokenParams) error
	GetUserByID(ctx context.Context, id int64) (db.User, error)
}

// PushSender delivers one push message to one device.
type PushSender interface {
	SendPush(info *notification_channel.PushNotificationInfo) error
}

// SMSSender delivers one text message.
type SMSSender interface {
	Send(phoneNumber, message string) error
}

// EmailSender delivers one transactional email.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSChannel routes texts through the provider selected in config.
type SMSChannel struct {
	Config *utils.Config
}

func (c *SMSChannel) Send(phoneNumber, message string) error {
	sms := notification_channel.SmsNotification{
		Message:     message,
		PhoneNumber: phoneNumber,
		Config:      c.Config,
	}
	return sms.SendSMS()
}

// EmailChannel routes mail through the Plunk client.
type EmailChannel struct {
	client *notification_channel.EmailNotification
}

func NewEmailChannel(config *utils.Config) *EmailChannel {
	return &EmailChannel{
		client: &notification_channel.EmailNotification{
			HttpClient: &http.Client{Timeout: 10 * time.Second},
			Config:     config,
		},
	}
}

func (c *EmailChannel) Send(to, subject, body string) error {
	return c.client.SendEmail(to, subject, body)
}

// NotificationService persists in-app notifications and fans them out
// to the user's registered devices. Delivery channels are optional:
// a nil channel downgrades that route to a log line so the service
// keeps working on half-configured environments.
type NotificationService struct {
	store   NotificationStore
	push    PushSender
	sms     SMSSender
	email   EmailSender
	metrics *metrics.Metrics
	logger  *logging.Logger
}

func NewNotificationService(
	store NotificationStore,
	push PushSender,
	sms SMSSender,
	email EmailSender,
	m *metrics.Metrics,
	logger *logging.Logger,
) *NotificationService {
	return &NotificationService{
		store:   store,
		push:    push,
		sms:     sms,
		email:   email,
		metrics: m,
		logger:  logger,
	}
}

// NotifyUser writes the notification record and then pushes it to
// every device the user has registered. The record is the source of
// truth: once it is stored the call succeeds even when every push
// fails.
func (n *NotificationService) NotifyUser(ctx context.Context, userID int64, kind, title, body string, data map[string]string) error {
	var raw pqtype.NullRawMessage
	if len(data) > 0 {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("could not encode notification data: %w", err)
		}
		raw = pqtype.NullRawMessage{RawMessage: payload, Valid: true}
	}

	_, err := n.store.CreateNotification(ctx, db.CreateNotificationParams{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
		Data:   raw,
	})
	if err != nil {
		return fmt.Errorf("could not record notification: %w", err)
	}

	if err := n.PushToUser(ctx, userID, title, body, data); err != nil {
		n.logger.Error(fmt.Sprintf("could not push notification to user %v: %v", userID, err))
	}

	return nil
}

// PushToUser delivers to every registered device without writing a
// record. Individual device failures are logged and counted, never
// retried.
func (n *NotificationService) PushToUser(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	if n.push == nil {
		n.logger.Warn("push channel not configured, dropping push")
		return nil
	}

	tokens, err := n.store.ListUserPushTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not list push tokens: %w", err)
	}
	if len(tokens) == 0 {
		n.logger.Info(fmt.Sprintf("user %v has no registered devices", userID))
		return nil
	}

	badge := 0
	if unread, err := n.store.CountUnreadNotifications(ctx, userID); err == nil {
		badge = int(unread)
	}

	for _, token := range tokens {
		info := &notification_channel.PushNotificationInfo{
			Title:    title,
			Message:  body,
			Provider: notification_channel.PushProvider(token.Provider),
			Data:     data,
			Badge:    badge,
		}
		if info.Provider == notification_channel.PushProviderExpo {
			info.UserExpoToken = token.Token
		} else {
			info.UserFCMToken = token.Token
		}

		if err := n.push.SendPush(info); err != nil {
			n.metrics.PushFailures.Inc()
			n.logger.Error(fmt.Sprintf("push to user %v via %v failed: %v", userID, token.Provider, err))
			continue
		}
		n.metrics.PushesSent.Inc()
	}

	return nil
}

// SendSMS delivers a text through the configured SMS provider.
func (n *NotificationService) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if n.sms == nil {
		return fmt.Errorf("sms channel not configured")
	}
	if err := n.sms.Send(phoneNumber, message); err != nil {
		n.metrics.SMSFailures.Inc()
		return fmt.Errorf("could not send sms: %w", err)
	}
	return nil
}

// EmailUser looks up the user's address and sends a transactional
// email.
func (n *NotificationService) EmailUser(ctx context.Context, userID int64, subject, body string) error {
	if n.email == nil {
		n.logger.Warn("email channel not configured, dropping email")
		return nil
	}

	user, err := n.store.GetUserByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no user %v to email", userID)
		}
		return fmt.Errorf("could not fetch user: %w", err)
	}

	if err := n.email.Send(user.Email, subject, body); err != nil {
		return fmt.Errorf("could not send email: %w", err)
	}
	return nil
}

// RegisterDevice stores a push token for the user, replacing any
// previous owner of the same token.
func (n *NotificationService) RegisterDevice(ctx context.Context, userID int64, provider, token, deviceUUID string) (db.UserPushToken, error) {
	provider = strings.ToLower(provider)
	switch notification_channel.PushProvider(provider) {
	case notification_channel.PushProviderExpo, notification_channel.PushProviderFCM:
	default:
		return db.UserPushToken{}, ErrUnknownProvider
	}

	var device sql.NullString
	if deviceUUID != "" {
		device = sql.NullString{String: deviceUUID, Valid: true}
	}

	row, err := n.store.UpsertPushToken(ctx, db.UpsertPushTokenParams{
		UserID:     userID,
		Provider:   provider,
		Token:      token,
		DeviceUuid: device,
	})
	if err != nil {
		return db.UserPushToken{}, fmt.Errorf("could not register device: %w", err)
	}
	return row, nil
}

// RemoveDevice drops a push token the user no longer wants deliveries
// on.
func (n *NotificationService) RemoveDevice(ctx context.Context, userID int64, token string) error {
	err := n.store.DeletePushToken(ctx, db.DeletePushTokenParams{
		Token:  token,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("could not remove device: %w", err)
	}
	return nil
}

func (n *NotificationService) List(ctx context.Context, userID int64, limit, offset int32) ([]NotificationModel, error) {
	rows, err := n.store.ListNotificationsByUser(ctx, db.ListNotificationsByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list notifications: %w", err)
	}
	return ToNotificationModels(rows), nil
}

func (n *NotificationService) MarkRead(ctx context.Context, userID, id int64) (*NotificationModel, error) {
	row, err := n.store.MarkNotificationRead(ctx, db.MarkNotificationReadParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("could not mark notification read: %w", err)
	}
	model := ToNotificationModel(row)
	return &model, nil
}

func (n *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := n.store.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("could not mark notifications read: %w", err)
	}
	return nil
}

func (n *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	if err := n.store.DeleteNotification(ctx, db.DeleteNotificationParams{
		ID:     id,
		UserID: userID,
	}); err != nil {
		return fmt.Errorf("could not delete notification: %w", err)
	}
	return nil
}

func (n *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	count, err := n.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not count notifications: %w", err)
	}
	return count, nil
}
