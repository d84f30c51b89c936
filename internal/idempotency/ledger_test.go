package idempotency

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"
)

func setupLedger(t *testing.T) (*Ledger, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	return NewLedger(&dbpg.DB{Master: db}, time.Hour), mock
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("owner", "title", "2025-09-15T10:00:00Z")
	b := Fingerprint("owner", "title", "2025-09-15T10:00:00Z")
	c := Fingerprint("owner", "title", "2025-09-15T11:00:00Z")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestLedger_Admit_FreshKey(t *testing.T) {
	ledger, mock := setupLedger(t)

	ownerID := uuid.New()
	snapshot := json.RawMessage(`{"id":"abc"}`)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO idempotency_keys`)).
		WithArgs(ownerID, "key-1", "fp-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SET result_snapshot = $1`)).
		WithArgs([]byte(snapshot), ownerID, "key-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	computed := false
	got, replayed, err := ledger.Admit(context.Background(), ownerID, "key-1", "fp-1",
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			computed = true
			return snapshot, nil
		})

	assert.NoError(t, err)
	assert.True(t, computed)
	assert.False(t, replayed)
	assert.Equal(t, snapshot, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Admit_Replay(t *testing.T) {
	ledger, mock := setupLedger(t)

	ownerID := uuid.New()
	snapshot := []byte(`{"id":"abc"}`)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO idempotency_keys`)).
		WithArgs(ownerID, "key-1", "fp-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT fingerprint, result_snapshot, expires_at`)).
		WithArgs(ownerID, "key-1").
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "result_snapshot", "expires_at"}).
			AddRow("fp-1", snapshot, time.Now().Add(time.Hour)))
	mock.ExpectCommit()

	got, replayed, err := ledger.Admit(context.Background(), ownerID, "key-1", "fp-1",
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			t.Fatal("compute must not run on a replay")
			return nil, nil
		})

	assert.NoError(t, err)
	assert.True(t, replayed)
	assert.JSONEq(t, string(snapshot), string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Admit_FingerprintConflict(t *testing.T) {
	ledger, mock := setupLedger(t)

	ownerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO idempotency_keys`)).
		WithArgs(ownerID, "key-1", "fp-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT fingerprint, result_snapshot, expires_at`)).
		WithArgs(ownerID, "key-1").
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "result_snapshot", "expires_at"}).
			AddRow("fp-1", []byte(`{}`), time.Now().Add(time.Hour)))
	mock.ExpectRollback()

	_, _, err := ledger.Admit(context.Background(), ownerID, "key-1", "fp-2",
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			t.Fatal("compute must not run on a conflict")
			return nil, nil
		})

	assert.ErrorIs(t, err, ErrKeyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Admit_ExpiredKeyReclaimed(t *testing.T) {
	ledger, mock := setupLedger(t)

	ownerID := uuid.New()
	snapshot := json.RawMessage(`{"id":"new"}`)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO idempotency_keys`)).
		WithArgs(ownerID, "key-1", "fp-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT fingerprint, result_snapshot, expires_at`)).
		WithArgs(ownerID, "key-1").
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "result_snapshot", "expires_at"}).
			AddRow("fp-1", []byte(`{"id":"old"}`), time.Now().Add(-time.Minute)))
	mock.ExpectExec(regexp.QuoteMeta(`SET fingerprint = $1, result_snapshot = NULL`)).
		WithArgs("fp-2", sqlmock.AnyArg(), ownerID, "key-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SET result_snapshot = $1`)).
		WithArgs([]byte(snapshot), ownerID, "key-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, replayed, err := ledger.Admit(context.Background(), ownerID, "key-1", "fp-2",
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			return snapshot, nil
		})

	assert.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, snapshot, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Admit_ComputeErrorRollsBack(t *testing.T) {
	ledger, mock := setupLedger(t)

	ownerID := uuid.New()
	boom := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO idempotency_keys`)).
		WithArgs(ownerID, "key-1", "fp-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	_, _, err := ledger.Admit(context.Background(), ownerID, "key-1", "fp-1",
		func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error) {
			return nil, boom
		})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
