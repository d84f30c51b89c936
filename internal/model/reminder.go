package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder status values. Transitions follow the state machine enforced by
// the service layer: StatusDone and StatusCancelled are terminal.
const (
	StatusActive    = "active"
	StatusSnoozed   = "snoozed"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// Reminder represents one schedulable intent in the system.
type Reminder struct {
	ID             uuid.UUID  `json:"id"`                        // unique identifier for the reminder
	OwnerID        uuid.UUID  `json:"owner_id"`                  // user the reminder belongs to
	Title          string     `json:"title"`                     // short summary shown in the notification
	Body           string     `json:"body"`                      // optional longer text
	DueAtUTC       time.Time  `json:"due_at_utc"`                // instant the next occurrence is due
	DueAtLocal     string     `json:"due_at_local"`              // wall-clock time as the client supplied it, never recomputed
	Timezone       string     `json:"timezone"`                  // IANA zone name paired with DueAtLocal
	RecurrenceRule string     `json:"recurrence_rule,omitempty"` // raw rule string, empty for one-shot reminders
	Status         string     `json:"status"`                    // current state, e.g. "active", "snoozed", "done", "cancelled"
	LinkedNoteID   *uuid.UUID `json:"linked_note_id,omitempty"`  // weak reference into the notes collaborator
	LinkedEventID  *uuid.UUID `json:"linked_event_id,omitempty"` // weak reference into the calendar collaborator
	CreatedAt      time.Time  `json:"created_at"`                // timestamp when the reminder was created
	UpdatedAt      time.Time  `json:"updated_at"`                // timestamp when the reminder was last updated
}

// IsRecurring reports whether the reminder carries a recurrence rule.
func (r *Reminder) IsRecurring() bool {
	return r.RecurrenceRule != ""
}

// IsTerminal reports whether the reminder reached a state it can never
// leave. Terminal reminders are retained for audit, never rescheduled.
func (r *Reminder) IsTerminal() bool {
	return r.Status == StatusDone || r.Status == StatusCancelled
}
