package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

const runColumns = `
	id, sequence, batch_id, category, status, pages, tracks, skipped,
	artists, report_path, error, started_at, finished_at
`

// RunRepository stores category runs and their rankings.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts run and its ranked entries in one transaction.
//
// A missing ID is generated; Sequence is always assigned.
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	if run.Category == "" {
		return fmt.Errorf("%w: run category is required", shared.ErrInvalidInput)
	}
	if run.ID == "" {
		run.ID = shared.GenerateID()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(ctx, tx, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		run.ID,
		sequence,
		run.BatchID,
		run.Category,
		run.Status,
		run.Pages,
		run.Tracks,
		run.Skipped,
		run.Artists,
		run.ReportPath,
		run.Error,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO run_entries (run_id, rank, artist, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range run.Entries {
		if _, err := stmt.ExecContext(ctx, run.ID, i+1, entry.Artist, entry.Count); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	run.Sequence = sequence
	return nil
}

// Get retrieves a run with its full ranking. id may be a full ID or a unique prefix of at least 8 characters.
func (r *RunRepository) Get(ctx context.Context, id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	args := []any{id}
	if len(id) >= 8 && len(id) < 36 {
		query = `SELECT ` + runColumns + ` FROM runs WHERE id LIKE ? ORDER BY sequence DESC LIMIT 2`
		args = []any{id + "%"}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: ambiguous run prefix %s", shared.ErrInvalidArgument, id)
	}

	run := runs[0]
	if run.Entries, err = r.Entries(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// Entries returns the stored ranking of a run, best first.
func (r *RunRepository) Entries(ctx context.Context, runID string) ([]models.RankedEntry, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT artist, count FROM run_entries WHERE run_id = ? ORDER BY rank", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RankedEntry
	for rows.Next() {
		var e models.RankedEntry
		if err := rows.Scan(&e.Artist, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// List returns the most recent runs first, without their rankings.
//
// Criteria: "category" (string), "status" (string), "batch_id" (string). A non-positive limit means no limit.
func (r *RunRepository) List(ctx context.Context, criteria map[string]any, limit int) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1 = 1`
	args := []any{}

	if category, ok := criteria["category"].(string); ok && category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if batchID, ok := criteria["batch_id"].(string); ok && batchID != "" {
		query += " AND batch_id = ?"
		args = append(args, batchID)
	}

	query += " ORDER BY sequence DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// Latest returns the most recent successful run of category.
func (r *RunRepository) Latest(ctx context.Context, category models.Category) (*models.Run, error) {
	runs, err := r.List(ctx, map[string]any{"category": string(category), "status": string(models.RunDone)}, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no completed run for %s", shared.ErrRunNotFound, category)
	}
	return r.Get(ctx, runs[0].ID)
}

// Delete removes a run and its ranking.
func (r *RunRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}

	// Entries go with the run even when foreign keys are not enforced on this connection.
	if _, err := r.db.ExecContext(ctx, "DELETE FROM run_entries WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

// scanRun scans the current row of [sql.Rows] into a [models.Run]
func scanRun(rows *sql.Rows) (*models.Run, error) {
	var (
		run        models.Run
		category   string
		status     string
		startedAt  time.Time
		finishedAt time.Time
	)

	err := rows.Scan(
		&run.ID, &run.Sequence, &run.BatchID, &category, &status, &run.Pages, &run.Tracks, &run.Skipped,
		&run.Artists, &run.ReportPath, &run.Error, &startedAt, &finishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Category = models.Category(category)
	run.Status = models.RunStatus(status)
	run.StartedAt = startedAt.UTC()
	run.FinishedAt = finishedAt.UTC()
	return &run, nil
}
