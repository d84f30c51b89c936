package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/plannerd/reminderd/internal/model"
)

var ErrAttemptNotFound = errors.New("delivery attempt not found")

// Repository is the delivery-attempt ledger. Every send attempt is recorded
// before the transport call and resolved to delivered or failed afterwards.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new delivery attempt repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// createAttemptRetries bounds the re-reads when two attempt inserts for the
// same (reminder, device) pair collide on the attempt-number constraint.
const createAttemptRetries = 3

// CreateAttempt inserts a pending attempt with the next attempt number for
// the (reminder, device) pair and returns the attempt's ID and number. The
// subselect keeps attempt numbers strictly increasing per pair. Two
// concurrent inserts for the same pair can compute the same number; the
// unique constraint rejects the loser, which re-reads and takes the next
// number instead of failing the delivery.
func (r *Repository) CreateAttempt(ctx context.Context, reminderID, deviceID uuid.UUID) (uuid.UUID, int, error) {
	query := `
		INSERT INTO delivery_attempts (reminder_id, device_id, attempt_number, status)
		SELECT $1, $2, COALESCE(MAX(attempt_number), 0) + 1, 'pending'
		FROM delivery_attempts
		WHERE reminder_id = $1 AND device_id = $2
		RETURNING id, attempt_number;
    `

	var id uuid.UUID
	var number int
	var err error
	for i := 0; i < createAttemptRetries; i++ {
		err = r.db.QueryRowContext(ctx, query, reminderID, deviceID).Scan(&id, &number)
		if err == nil {
			return id, number, nil
		}
		if !isUniqueViolation(err) {
			break
		}
	}

	return uuid.Nil, 0, fmt.Errorf("failed to create delivery attempt: %w", err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// MarkDelivered resolves an attempt on positive transport acknowledgment.
func (r *Repository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	query := `
		UPDATE delivery_attempts
		SET status = 'delivered', delivered_at = $1
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, deliveredAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark attempt delivered: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrAttemptNotFound
	}

	return nil
}

// MarkFailed resolves an attempt with the transport error that ended it.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, attemptErr string) error {
	query := `
		UPDATE delivery_attempts
		SET status = 'failed', error = $1
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, attemptErr, id)
	if err != nil {
		return fmt.Errorf("failed to mark attempt failed: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrAttemptNotFound
	}

	return nil
}

// ListByReminder retrieves the attempt history for one reminder, newest
// first. Backing query for the delivery-status endpoint.
func (r *Repository) ListByReminder(ctx context.Context, reminderID uuid.UUID) ([]model.DeliveryAttempt, error) {
	query := `
		SELECT id, reminder_id, device_id, attempt_number, status, sent_at, delivered_at, error
		FROM delivery_attempts
		WHERE reminder_id = $1
		ORDER BY sent_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, reminderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery attempts: %w", err)
	}
	defer rows.Close()

	var attempts []model.DeliveryAttempt
	for rows.Next() {
		var a model.DeliveryAttempt
		if err := rows.Scan(
			&a.ID, &a.ReminderID, &a.DeviceID, &a.AttemptNumber, &a.Status, &a.SentAt, &a.DeliveredAt, &a.Error,
		); err != nil {
			return nil, err
		}

		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
