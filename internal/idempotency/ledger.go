// Package idempotency implements the admit-or-replay ledger that makes
// reminder creation safe under client retries. The ledger record and the
// side effect it guards are written in one database transaction, so there
// is no window where one exists without the other.
package idempotency

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
)

// ErrKeyConflict is returned when an idempotency key is reused with a
// request whose fingerprint differs from the one on record. Distinct from a
// replay: a conflict is a client bug and is never silently overwritten.
var ErrKeyConflict = errors.New("idempotency key reused with a different request")

// DefaultTTL is how long a key stays on record before it becomes eligible
// for reuse with a new fingerprint.
const DefaultTTL = 24 * time.Hour

// ComputeFunc executes the guarded side effect on the ledger's transaction
// and returns the response snapshot to store and replay.
type ComputeFunc func(ctx context.Context, tx *sql.Tx) (json.RawMessage, error)

// Ledger records request fingerprints per (owner, key) pair.
type Ledger struct {
	db  *dbpg.DB
	ttl time.Duration
}

// NewLedger creates a ledger over the given pool. A non-positive ttl falls
// back to DefaultTTL.
func NewLedger(db *dbpg.DB, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ledger{db: db, ttl: ttl}
}

// Fingerprint hashes the semantically relevant request fields into the
// stable digest stored with a key.
func Fingerprint(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "\n")))
	return hex.EncodeToString(sum[:])
}

// Admit runs compute exactly once per (owner, key, fingerprint).
//
// An unseen key claims a ledger row, executes compute on the same
// transaction and commits both together. A known key with a matching
// fingerprint returns the stored snapshot with replayed=true. A known key
// with a different fingerprint returns ErrKeyConflict. An expired key is
// reclaimed as if unseen.
//
// Two concurrent requests with the same key serialize on the claimed row:
// the loser of the insert race observes the winner's committed record and
// replays it, so the side effect runs exactly once.
func (l *Ledger) Admit(ctx context.Context, ownerID uuid.UUID, key, fingerprint string, compute ComputeFunc) (json.RawMessage, bool, error) {
	tx, err := l.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin idempotency tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO idempotency_keys (owner_id, key, fingerprint, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, key) DO NOTHING;
    `, ownerID, key, fingerprint, time.Now().Add(l.ttl))
	if err != nil {
		return nil, false, fmt.Errorf("claim idempotency key: %w", err)
	}

	claimed, _ := res.RowsAffected()
	if claimed == 1 {
		snapshot, err := l.computeAndStore(ctx, tx, ownerID, key, compute)
		return snapshot, false, err
	}

	// The key exists (or was just committed by a concurrent winner).
	var storedFingerprint string
	var storedSnapshot json.RawMessage
	var expiresAt time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT fingerprint, result_snapshot, expires_at
		FROM idempotency_keys
		WHERE owner_id = $1 AND key = $2
		FOR UPDATE;
    `, ownerID, key).Scan(&storedFingerprint, &storedSnapshot, &expiresAt)
	if err != nil {
		return nil, false, fmt.Errorf("load idempotency record: %w", err)
	}

	if time.Now().After(expiresAt) {
		// Expired: the key is eligible for reuse with a new fingerprint.
		_, err = tx.ExecContext(ctx, `
			UPDATE idempotency_keys
			SET fingerprint = $1, result_snapshot = NULL, expires_at = $2, created_at = now()
			WHERE owner_id = $3 AND key = $4;
        `, fingerprint, time.Now().Add(l.ttl), ownerID, key)
		if err != nil {
			return nil, false, fmt.Errorf("reclaim expired idempotency key: %w", err)
		}

		snapshot, err := l.computeAndStore(ctx, tx, ownerID, key, compute)
		return snapshot, false, err
	}

	if storedFingerprint != fingerprint {
		return nil, false, ErrKeyConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit idempotency replay: %w", err)
	}

	return storedSnapshot, true, nil
}

func (l *Ledger) computeAndStore(ctx context.Context, tx *sql.Tx, ownerID uuid.UUID, key string, compute ComputeFunc) (json.RawMessage, error) {
	snapshot, err := compute(ctx, tx)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE idempotency_keys
		SET result_snapshot = $1
		WHERE owner_id = $2 AND key = $3;
    `, []byte(snapshot), ownerID, key)
	if err != nil {
		return nil, fmt.Errorf("store idempotency snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit idempotency record: %w", err)
	}

	return snapshot, nil
}
