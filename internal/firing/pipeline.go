// Package firing transitions due reminders to fired: it records the
// occurrence, measures fire-lag, advances recurring reminders to their next
// occurrence and fans the notification out to the owner's devices.
package firing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/metrics"
	"github.com/plannerd/reminderd/internal/model"
	"github.com/plannerd/reminderd/internal/recurrence"
)

//go:generate mockgen -source=pipeline.go -destination=../mocks/firing/mock.go -package=mocks
type reminderRepository interface {
	GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error)
	MarkOccurrenceFired(ctx context.Context, id uuid.UUID, dueAt time.Time) (bool, error)
	CountFiredOccurrences(ctx context.Context, id uuid.UUID) (int, error)
	AdvanceDue(ctx context.Context, id uuid.UUID, dueUTC time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type deviceRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Device, error)
}

type deliverer interface {
	Deliver(ctx context.Context, rem model.Reminder, dev model.Device) (model.DeliveryAttempt, error)
}

type statusCache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
}

// Pipeline handles one due occurrence end to end.
type Pipeline struct {
	reminders reminderRepository
	devices   deviceRepository
	delivery  deliverer
	cache     statusCache
	strategy  retry.Strategy
	metrics   *metrics.Recorder
}

// NewPipeline creates a firing pipeline. The cache mirrors the status
// writes the service layer does, so status reads stay coherent after a
// reminder fires.
func NewPipeline(
	reminders reminderRepository,
	devices deviceRepository,
	delivery deliverer,
	cache statusCache,
	strategy retry.Strategy,
	m *metrics.Recorder,
) *Pipeline {
	return &Pipeline{
		reminders: reminders,
		devices:   devices,
		delivery:  delivery,
		cache:     cache,
		strategy:  strategy,
		metrics:   m,
	}
}

// Fire processes one due occurrence. It returns the next occurrence to
// index when the reminder recurs and has occurrences left.
//
// Firing is idempotent per (reminder, occurrence): marking the occurrence
// fired is a unique insert, so a second invocation for the same occurrence
// (a restart racing an in-flight fire) detects the existing row and skips
// delivery instead of double-delivering. The already-fired path still runs
// the post-fire bookkeeping, because a crash between the occurrence insert
// and the due/status writes would otherwise leave the reminder pending with
// a past due time forever; advancing and marking done are conditional
// updates, so repeating them is harmless. A reminder cancelled while the
// fire was in flight is detected both on load and again right before
// delivery dispatch.
func (p *Pipeline) Fire(ctx context.Context, reminderID uuid.UUID, dueAt time.Time) (time.Time, bool) {
	rem, err := p.reminders.GetReminderByID(ctx, reminderID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", reminderID.String()).Msg("failed to load reminder for firing")
		return time.Time{}, false
	}

	if rem.IsTerminal() {
		zlog.Logger.Info().
			Str("reminder_id", reminderID.String()).
			Str("status", rem.Status).
			Msg("reminder no longer pending, skipping fire")
		return time.Time{}, false
	}

	alreadyFired, err := p.reminders.MarkOccurrenceFired(ctx, reminderID, dueAt)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", reminderID.String()).Msg("failed to mark occurrence fired")
		return time.Time{}, false
	}
	if alreadyFired {
		zlog.Logger.Info().
			Str("reminder_id", reminderID.String()).
			Time("due_at", dueAt).
			Msg("occurrence already fired, resuming bookkeeping without redelivery")
	} else {
		// Negative lag means clock skew; report it as observed.
		lag := time.Since(dueAt)
		p.metrics.FireLag.Observe(lag.Seconds())
		p.metrics.RemindersFired.Inc()

		zlog.Logger.Info().
			Str("event", "reminder_firing").
			Str("reminder_id", reminderID.String()).
			Time("due_at", dueAt).
			Dur("fire_lag", lag).
			Msg("reminder firing")
	}

	next, hasNext := p.advanceRecurrence(ctx, rem, dueAt)

	if !alreadyFired {
		p.dispatch(ctx, rem)
	}

	if !hasNext {
		if err := p.reminders.UpdateStatus(ctx, reminderID, model.StatusDone); err != nil {
			zlog.Logger.Error().Err(err).Str("reminder_id", reminderID.String()).Msg("failed to mark reminder done")
		} else if err := p.cache.SetWithRetry(ctx, p.strategy, reminderID.String(), model.StatusDone); err != nil {
			zlog.Logger.Error().Err(err).Str("reminder_id", reminderID.String()).Msg("failed to cache reminder status")
		}
	}

	return next, hasNext
}

// advanceRecurrence computes and persists the next occurrence of a
// recurring reminder. The rule was validated at creation; COUNT is enforced
// against the fired-occurrence ledger so it survives restarts.
func (p *Pipeline) advanceRecurrence(ctx context.Context, rem model.Reminder, dueAt time.Time) (time.Time, bool) {
	if !rem.IsRecurring() {
		return time.Time{}, false
	}

	rule, err := recurrence.Parse(rem.RecurrenceRule)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("stored recurrence rule no longer parses")
		return time.Time{}, false
	}

	if rule.Count > 0 {
		fired, err := p.reminders.CountFiredOccurrences(ctx, rem.ID)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to count fired occurrences")
			return time.Time{}, false
		}
		if fired >= rule.Count {
			return time.Time{}, false
		}
	}

	next, ok := rule.Next(dueAt, dueAt)
	if !ok {
		return time.Time{}, false
	}

	if err := p.reminders.AdvanceDue(ctx, rem.ID, next); err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to advance recurring reminder")
		return time.Time{}, false
	}

	if err := p.cache.SetWithRetry(ctx, p.strategy, rem.ID.String(), model.StatusActive); err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to cache reminder status")
	}

	return next, true
}

// dispatch delivers to every device of the reminder's owner concurrently.
// The status re-check right before dispatch makes cancellation effective
// even for fires already in flight.
func (p *Pipeline) dispatch(ctx context.Context, rem model.Reminder) {
	current, err := p.reminders.GetReminderByID(ctx, rem.ID)
	if err == nil && current.Status == model.StatusCancelled {
		zlog.Logger.Info().Str("reminder_id", rem.ID.String()).Msg("reminder cancelled before dispatch, aborting delivery")
		return
	}

	devices, err := p.devices.ListByOwner(ctx, rem.OwnerID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to list devices for delivery")
		return
	}
	if len(devices) == 0 {
		zlog.Logger.Info().Str("reminder_id", rem.ID.String()).Msg("owner has no registered devices, nothing to deliver")
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(devices))
	for _, dev := range devices {
		go func(dev model.Device) {
			defer wg.Done()
			if _, err := p.delivery.Deliver(ctx, rem, dev); err != nil {
				zlog.Logger.Warn().Err(err).
					Str("reminder_id", rem.ID.String()).
					Str("device_id", dev.ID.String()).
					Msg("delivery did not complete")
			}
		}(dev)
	}
	wg.Wait()
}
