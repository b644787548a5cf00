// internal/infra/database/postgres_lock_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"vessel_briefing_bot/internal/domain/dispatch"
)

// PostgresLockRepository stores the dispatch lock in the dispatch_locks
// table:
//
//	CREATE TABLE dispatch_locks (
//	    slot             TEXT PRIMARY KEY,
//	    dispatched_at_ms BIGINT NOT NULL
//	);
type PostgresLockRepository struct {
	db *sql.DB
}

func NewPostgresLockRepository(db *sql.DB) *PostgresLockRepository {
	return &PostgresLockRepository{db: db}
}

// Last returns the most recent successful dispatch across all slots.
func (r *PostgresLockRepository) Last(ctx context.Context) (*dispatch.LockRecord, error) {
	query := `SELECT slot, dispatched_at_ms FROM dispatch_locks ORDER BY dispatched_at_ms DESC LIMIT 1`
	record := dispatch.LockRecord{}
	err := r.db.QueryRowContext(ctx, query).Scan(&record.Slot, &record.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dispatch.ErrNoLock
		}
		return nil, fmt.Errorf("error reading dispatch lock: %w", err)
	}
	return &record, nil
}

func (r *PostgresLockRepository) Save(ctx context.Context, record *dispatch.LockRecord) error {
	query := `INSERT INTO dispatch_locks (slot, dispatched_at_ms)
               VALUES ($1, $2)
               ON CONFLICT (slot) DO UPDATE SET dispatched_at_ms = EXCLUDED.dispatched_at_ms`
	if _, err := r.db.ExecContext(ctx, query, record.Slot, record.Timestamp); err != nil {
		return fmt.Errorf("error saving dispatch lock: %w", err)
	}
	return nil
}
