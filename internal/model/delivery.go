package model

import (
	"time"

	"github.com/google/uuid"
)

// Delivery attempt status values.
const (
	AttemptPending   = "pending"
	AttemptDelivered = "delivered"
	AttemptFailed    = "failed"
)

// DeliveryAttempt records a single push/email/telegram send attempt for one
// occurrence of a reminder on one device. AttemptNumber strictly increases
// per (reminder, device); a "delivered" attempt halts further retries.
type DeliveryAttempt struct {
	ID            uuid.UUID  `json:"id"`
	ReminderID    uuid.UUID  `json:"reminder_id"`
	DeviceID      uuid.UUID  `json:"device_id"`
	AttemptNumber int        `json:"attempt_number"`
	Status        string     `json:"status"` // "pending", "delivered" or "failed"
	SentAt        time.Time  `json:"sent_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"` // set only on positive acknowledgment
	Error         *string    `json:"error,omitempty"`        // transport error for failed attempts
}
