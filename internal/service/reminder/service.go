package reminder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/idempotency"
	"github.com/plannerd/reminderd/internal/metrics"
	"github.com/plannerd/reminderd/internal/model"
	"github.com/plannerd/reminderd/internal/recurrence"
	reminderrepo "github.com/plannerd/reminderd/internal/repository/reminder"
)

var (
	// ErrInvalidDueTime rejects requests without a usable due instant.
	ErrInvalidDueTime = errors.New("due time must be set")

	// ErrTerminalState rejects transitions out of done or cancelled.
	ErrTerminalState = errors.New("reminder already done or cancelled")

	// ErrInvalidTransition rejects status changes the state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// localTimeLayout formats the rewritten due_at_local on snooze.
const localTimeLayout = "2006-01-02 15:04:05"

//go:generate mockgen -source=service.go -destination=../../mocks/service/reminder/mock.go -package=mocks

type reminderRepository interface {
	CreateDeduplicated(ctx context.Context, rem model.Reminder) (uuid.UUID, bool, error)
	CreateReminderTx(ctx context.Context, tx *sql.Tx, rem model.Reminder) (uuid.UUID, error)
	GetReminder(ctx context.Context, ownerID, id uuid.UUID) (model.Reminder, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error)
	Snooze(ctx context.Context, ownerID, id uuid.UUID, dueUTC time.Time, dueLocal string) error
	Cancel(ctx context.Context, ownerID, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateLinkedEvent(ctx context.Context, ownerID, id uuid.UUID, eventID *uuid.UUID) error
}

type deliveryLedger interface {
	ListByReminder(ctx context.Context, reminderID uuid.UUID) ([]model.DeliveryAttempt, error)
}

type admitter interface {
	Admit(ctx context.Context, ownerID uuid.UUID, key, fingerprint string, compute idempotency.ComputeFunc) (json.RawMessage, bool, error)
}

type schedulerIndex interface {
	Schedule(reminderID uuid.UUID, dueAt time.Time)
	Reschedule(reminderID uuid.UUID, newDueAt time.Time)
	Cancel(reminderID uuid.UUID) bool
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service orchestrates reminder lifecycle: idempotent creation, the
// snooze/cancel/patch state machine and the scheduler re-indexing each
// transition requires.
type Service struct {
	repo       reminderRepository
	deliveries deliveryLedger
	ledger     admitter
	sched      schedulerIndex
	cache      cache
	metrics    *metrics.Recorder
}

// NewService creates the reminder service.
func NewService(
	repo reminderRepository,
	deliveries deliveryLedger,
	ledger admitter,
	sched schedulerIndex,
	cache cache,
	m *metrics.Recorder,
) *Service {
	return &Service{
		repo:       repo,
		deliveries: deliveries,
		ledger:     ledger,
		sched:      sched,
		cache:      cache,
		metrics:    m,
	}
}

// CreateInput carries a validated creation request. DueAtLocal and Timezone
// are stored verbatim; this subsystem never re-derives one from the other.
type CreateInput struct {
	OwnerID        uuid.UUID
	Title          string
	Body           string
	DueAtUTC       time.Time
	DueAtLocal     string
	Timezone       string
	RecurrenceRule string
	LinkedNoteID   *uuid.UUID
	LinkedEventID  *uuid.UUID
	IdempotencyKey string
}

// CreateResult is the response for a creation request, and the snapshot an
// idempotent replay returns.
type CreateResult struct {
	ID           uuid.UUID `json:"id"`
	Deduplicated bool      `json:"deduplicated"`
	Replayed     bool      `json:"-"`
}

// Create persists a reminder and indexes its first occurrence.
//
// Two dedup layers protect different client behaviors and never mix: a
// supplied Idempotency-Key makes retries replay the original response (the
// key expresses the client's intent, so identical content under two
// different keys still creates two reminders), while a keyless request is
// checked for a content duplicate (same owner, title and due instant) and
// answered with the existing id, deduplicated=true.
func (s *Service) Create(ctx context.Context, strategy retry.Strategy, in CreateInput) (CreateResult, error) {
	if in.DueAtUTC.IsZero() {
		return CreateResult{}, ErrInvalidDueTime
	}

	if in.RecurrenceRule != "" {
		if _, err := recurrence.Parse(in.RecurrenceRule); err != nil {
			return CreateResult{}, err
		}
	}

	rem := model.Reminder{
		OwnerID:        in.OwnerID,
		Title:          in.Title,
		Body:           in.Body,
		DueAtUTC:       in.DueAtUTC,
		DueAtLocal:     in.DueAtLocal,
		Timezone:       in.Timezone,
		RecurrenceRule: in.RecurrenceRule,
		LinkedNoteID:   in.LinkedNoteID,
		LinkedEventID:  in.LinkedEventID,
	}

	if in.IdempotencyKey != "" {
		return s.createWithKey(ctx, strategy, in, rem)
	}

	id, duplicated, err := s.repo.CreateDeduplicated(ctx, rem)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create reminder: %w", err)
	}
	if duplicated {
		s.metrics.RemindersDeduped.Inc()
		zlog.Logger.Info().
			Str("reminder_id", id.String()).
			Str("owner_id", in.OwnerID.String()).
			Msg("duplicate submission, returning existing reminder")
		return CreateResult{ID: id, Deduplicated: true}, nil
	}

	s.finishCreate(ctx, strategy, id, in.DueAtUTC)

	return CreateResult{ID: id}, nil
}

// createWithKey routes creation through the idempotency ledger: the insert
// and the ledger record commit in one transaction.
func (s *Service) createWithKey(ctx context.Context, strategy retry.Strategy, in CreateInput, rem model.Reminder) (CreateResult, error) {
	fingerprint := idempotency.Fingerprint(
		in.OwnerID.String(), in.Title, in.Body,
		in.DueAtUTC.UTC().Format(time.RFC3339Nano),
		in.DueAtLocal, in.Timezone, in.RecurrenceRule,
	)

	snapshot, replayed, err := s.ledger.Admit(ctx, in.OwnerID, in.IdempotencyKey, fingerprint,
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			id, err := s.repo.CreateReminderTx(ctx, tx, rem)
			if err != nil {
				return nil, fmt.Errorf("create reminder: %w", err)
			}

			return json.Marshal(CreateResult{ID: id})
		})
	if err != nil {
		return CreateResult{}, err
	}

	var result CreateResult
	if err := json.Unmarshal(snapshot, &result); err != nil {
		return CreateResult{}, fmt.Errorf("decode idempotency snapshot: %w", err)
	}
	result.Replayed = replayed

	if !replayed {
		s.finishCreate(ctx, strategy, result.ID, in.DueAtUTC)
	}

	return result, nil
}

// finishCreate runs the post-commit side effects of a fresh creation.
func (s *Service) finishCreate(ctx context.Context, strategy retry.Strategy, id uuid.UUID, dueAt time.Time) {
	s.metrics.RemindersCreated.Inc()

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), model.StatusActive); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}

	s.sched.Schedule(id, dueAt)
}

// Snooze pushes a reminder's due time to now+duration, strictly advancing
// it, and triggers exactly one scheduler re-index.
func (s *Service) Snooze(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID, duration time.Duration) (time.Time, error) {
	rem, err := s.repo.GetReminder(ctx, ownerID, id)
	if err != nil {
		return time.Time{}, err
	}
	if rem.IsTerminal() {
		return time.Time{}, ErrTerminalState
	}

	newDue := time.Now().Add(duration).UTC()
	newLocal := newDue.Format(localTimeLayout)
	if loc, locErr := time.LoadLocation(rem.Timezone); locErr == nil {
		newLocal = newDue.In(loc).Format(localTimeLayout)
	}

	if err := s.repo.Snooze(ctx, ownerID, id, newDue, newLocal); err != nil {
		return time.Time{}, err
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), model.StatusSnoozed); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}

	s.sched.Reschedule(id, newDue)

	zlog.Logger.Info().
		Str("event", "reminder_snoozed").
		Str("reminder_id", id.String()).
		Time("old_due_at", rem.DueAtUTC).
		Time("new_due_at", newDue).
		Msg("reminder snoozed")

	return newDue, nil
}

// Cancel transitions a reminder to cancelled, removes its pending entry and
// lets any in-flight delivery observe the terminal status and halt.
func (s *Service) Cancel(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID) error {
	if err := s.repo.Cancel(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), model.StatusCancelled); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}

	s.sched.Cancel(id)

	zlog.Logger.Info().Str("reminder_id", id.String()).Msg("reminder cancelled")

	return nil
}

// PatchInput carries the mutable fields of a PATCH request.
type PatchInput struct {
	Status          *string
	CalendarEventID *uuid.UUID
}

var allowedTransitions = map[string]map[string]bool{
	model.StatusActive:  {model.StatusSnoozed: true, model.StatusDone: true, model.StatusCancelled: true},
	model.StatusSnoozed: {model.StatusActive: true, model.StatusDone: true, model.StatusCancelled: true},
}

// Patch applies a partial update. Status changes go through the state
// machine; moving to a terminal state also removes the pending entry.
func (s *Service) Patch(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID, in PatchInput) error {
	rem, err := s.repo.GetReminder(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if in.Status != nil {
		target := *in.Status
		if rem.IsTerminal() {
			return ErrTerminalState
		}
		if !allowedTransitions[rem.Status][target] {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rem.Status, target)
		}

		if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
			return err
		}

		if err := s.cache.SetWithRetry(ctx, strategy, id.String(), target); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
		}

		if target == model.StatusDone || target == model.StatusCancelled {
			s.sched.Cancel(id)
		}
	}

	if in.CalendarEventID != nil {
		if err := s.repo.UpdateLinkedEvent(ctx, ownerID, id, in.CalendarEventID); err != nil {
			return err
		}
	}

	return nil
}

// List returns every reminder of one owner, soonest due first. An owner
// with no reminders gets an empty list, not an error.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error) {
	reminders, err := s.repo.ListByOwner(ctx, ownerID)
	if errors.Is(err, reminderrepo.ErrNoRemindersFound) {
		return []model.Reminder{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

// GetStatus returns a reminder's status, cache-first with store fallback.
// The cache is not owner-scoped, so ownership is confirmed against the
// store before answering; a foreign reminder stays a NotFound.
func (s *Service) GetStatus(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID) (string, error) {
	rem, err := s.repo.GetReminder(ctx, ownerID, id)
	if err != nil {
		return "", err
	}

	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder status from cache")
	}

	if errors.Is(err, redis.Nil) || status == "" {
		status = rem.Status

		if cacheErr := s.cache.SetWithRetry(ctx, strategy, id.String(), status); cacheErr != nil {
			zlog.Logger.Error().Err(cacheErr).Str("id", id.String()).Msg("failed to cache reminder status")
		}
	}

	return status, nil
}

// ListDeliveries returns the delivery-attempt history of an owned reminder.
func (s *Service) ListDeliveries(ctx context.Context, ownerID, id uuid.UUID) ([]model.DeliveryAttempt, error) {
	if _, err := s.repo.GetReminder(ctx, ownerID, id); err != nil {
		return nil, err
	}

	return s.deliveries.ListByReminder(ctx, id)
}
