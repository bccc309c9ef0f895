// package repositories provides the SQLite persistence layer for run history.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// execQuerier is satisfied by both [sql.DB] and [sql.Tx].
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NextSequence increments and returns the next sequence number for the given table.
//
// Sequence numbers give runs a human-readable ordering (e.g. run #42) independent of UUIDs and timestamps.
// Pass a [sql.Tx] to allocate the number inside the caller's transaction.
func NextSequence(ctx context.Context, q execQuerier, table string) (int, error) {
	sequenceTable := table + "_sequence"

	_, err := q.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = q.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
