package notification

import (
	"encoding/json"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
)

type NotificationModel struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

func ToNotificationModel(n db.Notification) NotificationModel {
	model := NotificationModel{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Data.Valid {
		var data map[string]string
		if err := json.Unmarshal(n.Data.RawMessage, &data); err == nil {
			model.Data = data
		}
	}
	return model
}

func ToNotificationModels(rows []db.Notification) []NotificationModel {
	models := make([]NotificationModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, ToNotificationModel(row))
	}
	return models
}
