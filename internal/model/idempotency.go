package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord stores the outcome of the first request seen for a
// given (owner, key) pair so retries can be answered without repeating the
// side effect. Fingerprint is a hash of the semantically relevant request
// fields; a retry with a different fingerprint is a key-reuse conflict.
type IdempotencyRecord struct {
	OwnerID        uuid.UUID       `json:"owner_id"`
	Key            string          `json:"key"`
	Fingerprint    string          `json:"fingerprint"`
	ResultSnapshot json.RawMessage `json:"result_snapshot"` // response body to replay
	ExpiresAt      time.Time       `json:"expires_at"`      // after this instant the key may be reused
	CreatedAt      time.Time       `json:"created_at"`
}
