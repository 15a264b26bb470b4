package models

import "time"

type CreateBookingRequest struct {
	ProviderID      int64     `json:"provider_id" binding:"required"`
	ServiceName     string    `json:"service_name" binding:"required"`
	PaymentMethod   string    `json:"payment_method" binding:"required"`
	ServiceAmount   string    `json:"service_amount" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int32     `json:"duration_minutes" binding:"required,gt=0"`
	Address         string    `json:"address" binding:"required"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Notes           string    `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Coordinates are pointers so a zero value still binds; required only
// rejects absent keys.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type SOSRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      string   `json:"note"`
}
