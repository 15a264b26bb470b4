package chat

import (
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	"github.com/google/uuid"
)

type MessageModel struct {
	ID        uuid.UUID `json:"id"`
	BookingID int64     `json:"booking_id"`
	SenderID  int64     `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMessageModel(m db.ChatMessage) MessageModel {
	return MessageModel{
		ID:        m.ID,
		BookingID: m.BookingID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageModels(rows []db.ChatMessage) []MessageModel {
	models := make([]MessageModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, ToMessageModel(row))
	}
	return models
}
