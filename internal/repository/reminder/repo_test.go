package reminder

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/plannerd/reminderd/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

var reminderRows = []string{
	"id", "owner_id", "title", "body", "due_at_utc", "due_at_local", "timezone",
	"recurrence_rule", "status", "linked_note_id", "linked_event_id", "created_at", "updated_at",
}

func TestCreateDeduplicated(t *testing.T) {
	repo, mock := setupMockDB(t)

	reminderID := uuid.New()
	rem := model.Reminder{
		OwnerID:    uuid.New(),
		Title:      "water the plants",
		Body:       "the big one in the hallway too",
		DueAtUTC:   time.Now().Add(time.Hour).UTC(),
		DueAtLocal: "2025-09-15 12:00:00",
		Timezone:   "Europe/Berlin",
	}

	// Fresh content: lock, no duplicate, insert, commit.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`pg_advisory_xact_lock`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(rem.OwnerID, rem.Title, rem.DueAtUTC).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reminders`)).
		WithArgs(
			rem.OwnerID, rem.Title, rem.Body, rem.DueAtUTC, rem.DueAtLocal, rem.Timezone,
			rem.RecurrenceRule, rem.LinkedNoteID, rem.LinkedEventID,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(reminderID))
	mock.ExpectCommit()

	id, duplicated, err := repo.CreateDeduplicated(context.Background(), rem)
	assert.NoError(t, err)
	assert.False(t, duplicated)
	assert.Equal(t, reminderID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDeduplicated_ExistingContent(t *testing.T) {
	repo, mock := setupMockDB(t)

	existing := uuid.New()
	rem := model.Reminder{
		OwnerID:  uuid.New(),
		Title:    "stand-up",
		DueAtUTC: time.Now().Add(time.Hour).UTC(),
	}

	// A pending reminder with the same owner, title and due instant wins:
	// no insert happens. The advisory lock serializes concurrent identical
	// submissions onto this path.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`pg_advisory_xact_lock`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id`)).
		WithArgs(rem.OwnerID, rem.Title, rem.DueAtUTC).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existing))
	mock.ExpectCommit()

	id, duplicated, err := repo.CreateDeduplicated(context.Background(), rem)
	assert.NoError(t, err)
	assert.True(t, duplicated)
	assert.Equal(t, existing, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReminder(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reminders`)).
		WithArgs(id, ownerID).
		WillReturnRows(sqlmock.NewRows(reminderRows).AddRow(
			id, ownerID, "stand-up", "", now.Add(time.Hour), "2025-09-15 12:00:00", "Europe/Berlin",
			"FREQ=DAILY", model.StatusActive, nil, nil, now, now,
		))

	rem, err := repo.GetReminder(context.Background(), ownerID, id)
	assert.NoError(t, err)
	assert.Equal(t, id, rem.ID)
	assert.Equal(t, "FREQ=DAILY", rem.RecurrenceRule)
	assert.Equal(t, model.StatusActive, rem.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReminder_ForeignOwnerNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	otherOwner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reminders`)).
		WithArgs(id, otherOwner).
		WillReturnRows(sqlmock.NewRows(reminderRows))

	_, err := repo.GetReminder(context.Background(), otherOwner, id)
	assert.ErrorIs(t, err, ErrReminderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPending(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now().UTC()
	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status IN ('active', 'snoozed')`)).
		WillReturnRows(sqlmock.NewRows(reminderRows).
			AddRow(first, uuid.New(), "one", "", now.Add(time.Minute), "a", "UTC", "", model.StatusActive, nil, nil, now, now).
			AddRow(second, uuid.New(), "two", "", now.Add(time.Hour), "b", "UTC", "", model.StatusSnoozed, nil, nil, now, now))

	reminders, err := repo.ListPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, reminders, 2)
	assert.Equal(t, first, reminders[0].ID)
	assert.Equal(t, second, reminders[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock := setupMockDB(t)

	ownerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE owner_id = $1`)).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(reminderRows))

	_, err := repo.ListByOwner(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrNoRemindersFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reminders`)).
		WithArgs(model.StatusDone, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, model.StatusDone)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Terminal rows are filtered by the WHERE clause, so zero rows affected
	// reports not found.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reminders`)).
		WithArgs(model.StatusActive, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), id, model.StatusActive)
	assert.ErrorIs(t, err, ErrReminderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnooze(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	ownerID := uuid.New()
	newDue := time.Now().Add(30 * time.Minute).UTC()

	mock.ExpectExec(regexp.QuoteMeta(`SET status = 'snoozed'`)).
		WithArgs(newDue, "2025-09-15 12:30:00", id, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Snooze(context.Background(), ownerID, id, newDue, "2025-09-15 12:30:00")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`SET status = 'snoozed'`)).
		WithArgs(newDue, "2025-09-15 12:30:00", id, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Snooze(context.Background(), ownerID, id, newDue, "2025-09-15 12:30:00")
	assert.ErrorIs(t, err, ErrReminderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	ownerID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`SET status = 'cancelled'`)).
		WithArgs(id, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), ownerID, id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceDue(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	nextDue := time.Now().Add(24 * time.Hour).UTC()

	mock.ExpectExec(regexp.QuoteMeta(`SET status = 'active', due_at_utc = $1`)).
		WithArgs(nextDue, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdvanceDue(context.Background(), id, nextDue)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountFiredOccurrences(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountFiredOccurrences(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOccurrenceFired(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	dueAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reminder_occurrences`)).
		WithArgs(id, dueAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	alreadyFired, err := repo.MarkOccurrenceFired(context.Background(), id, dueAt)
	assert.NoError(t, err)
	assert.False(t, alreadyFired)
	assert.NoError(t, mock.ExpectationsWereMet())

	// A conflicting insert affects zero rows: the occurrence already fired.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reminder_occurrences`)).
		WithArgs(id, dueAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	alreadyFired, err = repo.MarkOccurrenceFired(context.Background(), id, dueAt)
	assert.NoError(t, err)
	assert.True(t, alreadyFired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
