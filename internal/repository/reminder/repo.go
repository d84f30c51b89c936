package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/plannerd/reminderd/internal/model"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrNoRemindersFound = errors.New("no reminders found")
)

// Repository provides methods to interact with the reminders and
// reminder_occurrences tables.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new reminder repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying pool for components that need to run their own
// transactions spanning this repository's tables.
func (r *Repository) DB() *dbpg.DB {
	return r.db
}

const createQuery = `
		INSERT INTO reminders (
		    owner_id, title, body, due_at_utc, due_at_local, timezone, recurrence_rule, linked_note_id, linked_event_id
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		RETURNING id;
    `

const duplicateQuery = `
		SELECT id
		FROM reminders
		WHERE owner_id = $1 AND title = $2 AND due_at_utc = $3 AND status IN ('active', 'snoozed')
		LIMIT 1;
    `

// CreateDeduplicated inserts a reminder unless an equivalent pending one
// (same owner, title and due instant) already exists, in which case the
// existing id is returned with duplicated=true. Check and insert run in one
// transaction under an advisory lock keyed on the dedup triple, so two
// concurrent identical submissions resolve to a single row.
func (r *Repository) CreateDeduplicated(ctx context.Context, rem model.Reminder) (uuid.UUID, bool, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("begin dedup tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	lockKey := fmt.Sprintf("%s\n%s\n%s", rem.OwnerID, rem.Title, rem.DueAtUTC.UTC().Format(time.RFC3339Nano))
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, lockKey); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to acquire dedup lock: %w", err)
	}

	var existing uuid.UUID
	err = tx.QueryRowContext(ctx, duplicateQuery, rem.OwnerID, rem.Title, rem.DueAtUTC).Scan(&existing)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return uuid.Nil, false, fmt.Errorf("commit dedup tx: %w", err)
		}
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("failed to find duplicate reminder: %w", err)
	}

	err = tx.QueryRowContext(
		ctx, createQuery,
		rem.OwnerID, rem.Title, rem.Body, rem.DueAtUTC, rem.DueAtLocal, rem.Timezone,
		rem.RecurrenceRule, rem.LinkedNoteID, rem.LinkedEventID,
	).Scan(&rem.ID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to create reminder: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, false, fmt.Errorf("commit dedup tx: %w", err)
	}

	return rem.ID, false, nil
}

// CreateReminderTx inserts a reminder on an open transaction, so the insert
// can commit or roll back together with an idempotency record.
func (r *Repository) CreateReminderTx(ctx context.Context, tx *sql.Tx, rem model.Reminder) (uuid.UUID, error) {
	err := tx.QueryRowContext(
		ctx, createQuery,
		rem.OwnerID, rem.Title, rem.Body, rem.DueAtUTC, rem.DueAtLocal, rem.Timezone,
		rem.RecurrenceRule, rem.LinkedNoteID, rem.LinkedEventID,
	).Scan(&rem.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return rem.ID, nil
}

const reminderColumns = `id, owner_id, title, body, due_at_utc, due_at_local, timezone, COALESCE(recurrence_rule, ''), status, linked_note_id, linked_event_id, created_at, updated_at`

func scanReminder(row *sql.Row) (model.Reminder, error) {
	var rem model.Reminder
	err := row.Scan(
		&rem.ID, &rem.OwnerID, &rem.Title, &rem.Body, &rem.DueAtUTC, &rem.DueAtLocal, &rem.Timezone,
		&rem.RecurrenceRule, &rem.Status, &rem.LinkedNoteID, &rem.LinkedEventID, &rem.CreatedAt, &rem.UpdatedAt,
	)
	return rem, err
}

// GetReminder retrieves a reminder by owner and ID. A reminder belonging to
// a different owner is reported as not found, not forbidden.
func (r *Repository) GetReminder(ctx context.Context, ownerID, id uuid.UUID) (model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE id = $1 AND owner_id = $2;
    `

	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, ErrReminderNotFound
		}

		return model.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}

	return rem, nil
}

// GetReminderByID retrieves a reminder without owner scoping. Used by the
// firing pipeline, which works from scheduler entries rather than requests.
func (r *Repository) GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE id = $1;
    `

	rem, err := scanReminder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, ErrReminderNotFound
		}

		return model.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}

	return rem, nil
}

// ListByOwner retrieves all reminders for one owner ordered by due time.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE owner_id = $1
		ORDER BY due_at_utc ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	reminders, err := collectReminders(rows)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, ErrNoRemindersFound
	}

	return reminders, nil
}

// ListPending retrieves every active or snoozed reminder. The scheduler
// rehydrates its due-time index from this query on startup; the index
// itself is never the source of truth.
func (r *Repository) ListPending(ctx context.Context) ([]model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE status IN ('active', 'snoozed')
		ORDER BY due_at_utc ASC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func collectReminders(rows *sql.Rows) ([]model.Reminder, error) {
	var reminders []model.Reminder
	for rows.Next() {
		var rem model.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.OwnerID, &rem.Title, &rem.Body, &rem.DueAtUTC, &rem.DueAtLocal, &rem.Timezone,
			&rem.RecurrenceRule, &rem.Status, &rem.LinkedNoteID, &rem.LinkedEventID, &rem.CreatedAt, &rem.UpdatedAt,
		); err != nil {
			return nil, err
		}

		reminders = append(reminders, rem)
	}

	return reminders, rows.Err()
}

// UpdateStatus transitions a reminder's status. Terminal reminders are
// guarded at the SQL level: a done or cancelled row never transitions again
// even under concurrent callers.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE reminders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status NOT IN ('done', 'cancelled');
    `

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update reminder status: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// Snooze rewrites the due pair and flips the reminder to snoozed. Only
// active or snoozed reminders qualify; rows affected zero means the
// reminder is unknown, foreign or already terminal.
func (r *Repository) Snooze(ctx context.Context, ownerID, id uuid.UUID, dueUTC time.Time, dueLocal string) error {
	query := `
		UPDATE reminders
		SET status = 'snoozed', due_at_utc = $1, due_at_local = $2, updated_at = now()
		WHERE id = $3 AND owner_id = $4 AND status IN ('active', 'snoozed');
    `

	res, err := r.db.ExecContext(ctx, query, dueUTC, dueLocal, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to snooze reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// Cancel transitions a reminder to cancelled, owner-scoped.
func (r *Repository) Cancel(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE reminders
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND owner_id = $2 AND status NOT IN ('done', 'cancelled');
    `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// AdvanceDue moves a recurring reminder to its next occurrence and returns
// it to the active state. Used by the firing pipeline after a fire.
func (r *Repository) AdvanceDue(ctx context.Context, id uuid.UUID, dueUTC time.Time) error {
	query := `
		UPDATE reminders
		SET status = 'active', due_at_utc = $1, updated_at = now()
		WHERE id = $2 AND status NOT IN ('done', 'cancelled');
    `

	res, err := r.db.ExecContext(ctx, query, dueUTC, id)
	if err != nil {
		return fmt.Errorf("failed to advance reminder due time: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// UpdateLinkedEvent patches the calendar event reference, owner-scoped.
func (r *Repository) UpdateLinkedEvent(ctx context.Context, ownerID, id uuid.UUID, eventID *uuid.UUID) error {
	query := `
		UPDATE reminders
		SET linked_event_id = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3;
    `

	res, err := r.db.ExecContext(ctx, query, eventID, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update linked event: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrReminderNotFound
	}

	return nil
}

// CountFiredOccurrences returns how many occurrences of a reminder have
// fired. The firing pipeline checks it against a rule's COUNT bound, so
// the bound holds across restarts.
func (r *Repository) CountFiredOccurrences(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reminder_occurrences
		WHERE reminder_id = $1;
    `

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fired occurrences: %w", err)
	}

	return count, nil
}

// MarkOccurrenceFired records that one occurrence of a reminder fired.
// Returns alreadyFired=true when another fire for the same occurrence got
// there first, which makes firing idempotent per (reminder, occurrence).
func (r *Repository) MarkOccurrenceFired(ctx context.Context, id uuid.UUID, dueAt time.Time) (bool, error) {
	query := `
		INSERT INTO reminder_occurrences (reminder_id, due_at)
		VALUES ($1, $2)
		ON CONFLICT (reminder_id, due_at) DO NOTHING;
    `

	res, err := r.db.ExecContext(ctx, query, id, dueAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark occurrence fired: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows == 0, nil
}
