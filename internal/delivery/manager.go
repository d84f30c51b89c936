// Package delivery sends fired reminders to a user's registered devices
// with bounded retries, recording every attempt in the delivery ledger.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/metrics"
	"github.com/plannerd/reminderd/internal/model"
)

// ErrDeliveryFailed is returned when every attempt in the retry budget was
// exhausted without a positive acknowledgment.
var ErrDeliveryFailed = errors.New("delivery failed after all attempts")

// ErrDeliveryCancelled is returned when the reminder was cancelled while
// retries were still pending.
var ErrDeliveryCancelled = errors.New("delivery halted, reminder cancelled")

// Transport sends one message over a concrete channel. A nil return is the
// positive acknowledgment that resolves an attempt to delivered.
type Transport interface {
	Send(ctx context.Context, address, title, body string) error
}

// Policy bounds the retry loop.
type Policy struct {
	Attempts int           `mapstructure:"attempts"` // total attempts including the first
	Delay    time.Duration `mapstructure:"delay"`    // pause before the first retry
	Backoff  float64       `mapstructure:"backoff"`  // multiplier applied to the pause per retry
	Timeout  time.Duration `mapstructure:"timeout"`  // per-attempt transport timeout
}

//go:generate mockgen -source=manager.go -destination=../mocks/delivery/mock.go -package=mocks
type attemptLedger interface {
	CreateAttempt(ctx context.Context, reminderID, deviceID uuid.UUID) (uuid.UUID, int, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, attemptErr string) error
}

type reminderGetter interface {
	GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error)
}

// Manager drives the per-device retry loop. Retry state lives in explicit
// attempt records, not in control flow: each attempt is inserted pending
// and resolved to delivered or failed.
type Manager struct {
	ledger     attemptLedger
	reminders  reminderGetter
	transports map[string]Transport
	policy     Policy
	metrics    *metrics.Recorder
}

// NewManager creates a delivery manager. transports maps channel names
// ("push", "email", "telegram") to their senders.
func NewManager(
	ledger attemptLedger,
	reminders reminderGetter,
	transports map[string]Transport,
	policy Policy,
	m *metrics.Recorder,
) *Manager {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if policy.Backoff < 1 {
		policy.Backoff = 1
	}
	if policy.Timeout <= 0 {
		policy.Timeout = 10 * time.Second
	}
	return &Manager{
		ledger:     ledger,
		reminders:  reminders,
		transports: transports,
		policy:     policy,
		metrics:    m,
	}
}

// Deliver attempts to push one fired reminder to one device.
//
// Transient failures (including per-attempt timeouts) are retried with
// exponential backoff up to the policy's attempt budget; exhaustion leaves
// a terminal failed attempt and increments the failure counter. A reminder
// cancelled between attempts halts the loop. Delivery never re-enters the
// scheduler.
func (m *Manager) Deliver(ctx context.Context, rem model.Reminder, dev model.Device) (model.DeliveryAttempt, error) {
	transport, ok := m.transports[dev.Channel]
	if !ok {
		m.metrics.DeliveryFailure.Inc()
		return model.DeliveryAttempt{}, fmt.Errorf("unknown channel %s", dev.Channel)
	}

	delay := m.policy.Delay
	for attempt := 1; attempt <= m.policy.Attempts; attempt++ {
		if attempt > 1 {
			if err := m.waitBackoff(ctx, delay); err != nil {
				return model.DeliveryAttempt{}, err
			}
			delay = time.Duration(float64(delay) * m.policy.Backoff)

			// A cancel racing with retries must win.
			current, err := m.reminders.GetReminderByID(ctx, rem.ID)
			if err == nil && current.Status == model.StatusCancelled {
				zlog.Logger.Info().
					Str("reminder_id", rem.ID.String()).
					Str("device_id", dev.ID.String()).
					Msg("reminder cancelled mid-retry, halting delivery")
				return model.DeliveryAttempt{}, ErrDeliveryCancelled
			}
		}

		attemptID, number, err := m.ledger.CreateAttempt(ctx, rem.ID, dev.ID)
		if err != nil {
			return model.DeliveryAttempt{}, fmt.Errorf("record delivery attempt: %w", err)
		}

		sentAt := time.Now()
		sendCtx, cancel := context.WithTimeout(ctx, m.policy.Timeout)
		sendErr := transport.Send(sendCtx, dev.Address, rem.Title, rem.Body)
		cancel()

		if sendErr == nil {
			deliveredAt := time.Now()
			if err := m.ledger.MarkDelivered(ctx, attemptID, deliveredAt); err != nil {
				zlog.Logger.Error().Err(err).Str("attempt_id", attemptID.String()).Msg("failed to resolve attempt to delivered")
			}

			m.metrics.DeliverySuccess.Inc()
			zlog.Logger.Info().
				Str("event", "notification_sent").
				Str("reminder_id", rem.ID.String()).
				Str("device_id", dev.ID.String()).
				Int("attempt", number).
				Time("delivered_at", deliveredAt).
				Msg("notification delivered")

			return model.DeliveryAttempt{
				ID:            attemptID,
				ReminderID:    rem.ID,
				DeviceID:      dev.ID,
				AttemptNumber: number,
				Status:        model.AttemptDelivered,
				SentAt:        sentAt,
				DeliveredAt:   &deliveredAt,
			}, nil
		}

		zlog.Logger.Warn().Err(sendErr).
			Str("reminder_id", rem.ID.String()).
			Str("device_id", dev.ID.String()).
			Int("attempt", number).
			Msg("delivery attempt failed")

		if err := m.ledger.MarkFailed(ctx, attemptID, sendErr.Error()); err != nil {
			zlog.Logger.Error().Err(err).Str("attempt_id", attemptID.String()).Msg("failed to resolve attempt to failed")
		}

		if attempt == m.policy.Attempts {
			m.metrics.DeliveryFailure.Inc()
			errMsg := sendErr.Error()
			return model.DeliveryAttempt{
				ID:            attemptID,
				ReminderID:    rem.ID,
				DeviceID:      dev.ID,
				AttemptNumber: number,
				Status:        model.AttemptFailed,
				SentAt:        sentAt,
				Error:         &errMsg,
			}, ErrDeliveryFailed
		}
	}

	return model.DeliveryAttempt{}, ErrDeliveryFailed
}

func (m *Manager) waitBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
