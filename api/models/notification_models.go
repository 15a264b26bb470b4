package models

type RegisterDeviceRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Token      string `json:"token" binding:"required"`
	DeviceUUID string `json:"device_uuid"`
}
