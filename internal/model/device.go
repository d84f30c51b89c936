package model

import (
	"time"

	"github.com/google/uuid"
)

// Delivery channels a device can register with.
const (
	ChannelPush     = "push"
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// Device is a delivery endpoint registered by a client. Devices are owned
// by exactly one user and have a lifecycle independent from reminders; this
// subsystem references them by id only.
type Device struct {
	ID        uuid.UUID `json:"id"`         // unique identifier for the device
	OwnerID   uuid.UUID `json:"owner_id"`   // user the device belongs to
	Channel   string    `json:"channel"`    // delivery method, e.g. "push", "email", "telegram"
	Address   string    `json:"address"`    // channel-specific target: push endpoint URL, email address or chat id
	CreatedAt time.Time `json:"created_at"` // timestamp when the device was registered
}
