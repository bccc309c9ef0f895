package repositories

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newRun(category models.Category, status models.RunStatus, entries ...models.RankedEntry) *models.Run {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Run{
		BatchID:    "batch-1",
		Category:   category,
		Status:     status,
		Pages:      2,
		Tracks:     10,
		Skipped:    1,
		Artists:    len(entries),
		ReportPath: string(category) + ".xlsx",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Entries:    entries,
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(ctx, db, "runs")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(ctx, db, "missing"); err == nil {
		t.Error("expected error for unknown sequence table")
	}
}

func TestRunRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		run := newRun("pop", models.RunDone, models.RankedEntry{Artist: "A", Count: 3})

		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if run.ID == "" {
			t.Error("run ID should be set after creation")
		}
		if run.Sequence != 1 {
			t.Errorf("expected sequence 1, got %d", run.Sequence)
		}
	})

	t.Run("Create keeps a given ID", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		run := newRun("pop", models.RunDone)
		run.ID = "fixed-id"

		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		if run.ID != "fixed-id" {
			t.Errorf("expected ID to be kept, got %s", run.ID)
		}
	})

	t.Run("Create requires category", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		if err := repo.Create(ctx, newRun("", models.RunDone)); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Create rolls back on invalid entry", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		run := newRun("pop", models.RunDone, models.RankedEntry{Artist: "A", Count: 0})

		if err := repo.Create(ctx, run); err == nil {
			t.Fatal("expected count check to reject the entry")
		}

		runs, err := repo.List(ctx, nil, 0)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected rollback, found %d runs", len(runs))
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		entries := []models.RankedEntry{{Artist: "A", Count: 3}, {Artist: "B", Count: 3}, {Artist: "C", Count: 1}}
		run := newRun("hiphop", models.RunDone, entries...)

		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		got, err := repo.Get(ctx, run.ID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}

		if got.Category != "hiphop" || got.Status != models.RunDone || got.Tracks != 10 || got.Skipped != 1 {
			t.Errorf("unexpected run %+v", got)
		}
		if !got.StartedAt.Equal(run.StartedAt) || got.Duration() != 3*time.Second {
			t.Errorf("expected timestamps to round-trip, got %v (%v)", got.StartedAt, got.Duration())
		}
		if !slices.Equal(got.Entries, entries) {
			t.Errorf("expected ranking %v in order, got %v", entries, got.Entries)
		}
	})

	t.Run("Get by short ID", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		run := newRun("pop", models.RunDone)
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		got, err := repo.Get(ctx, shared.ShortID(run.ID))
		if err != nil {
			t.Fatalf("failed to get run by prefix: %v", err)
		}
		if got.ID != run.ID {
			t.Errorf("expected %s, got %s", run.ID, got.ID)
		}
	})

	t.Run("Get ambiguous prefix", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		for _, id := range []string{"abcdefgh-1", "abcdefgh-2"} {
			run := newRun("pop", models.RunDone)
			run.ID = id
			if err := repo.Create(ctx, run); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		if _, err := repo.Get(ctx, "abcdefgh"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))

		if _, err := repo.Get(ctx, "nope"); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		for _, run := range []*models.Run{
			newRun("party", models.RunDone),
			newRun("hiphop", models.RunAborted),
			newRun("pop", models.RunDone),
			newRun("party", models.RunDone),
		} {
			if err := repo.Create(ctx, run); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		tests := []struct {
			name     string
			criteria map[string]any
			limit    int
			want     []models.Category
		}{
			{"all, newest first", nil, 0, []models.Category{"party", "pop", "hiphop", "party"}},
			{"limit", nil, 2, []models.Category{"party", "pop"}},
			{"by category", map[string]any{"category": "party"}, 0, []models.Category{"party", "party"}},
			{"by status", map[string]any{"status": "aborted"}, 0, []models.Category{"hiphop"}},
			{"by batch", map[string]any{"batch_id": "other"}, 0, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				runs, err := repo.List(ctx, tt.criteria, tt.limit)
				if err != nil {
					t.Fatalf("List failed: %v", err)
				}

				var got []models.Category
				for _, run := range runs {
					got = append(got, run.Category)
					if run.Entries != nil {
						t.Errorf("List should not load entries")
					}
				}
				if !slices.Equal(got, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			})
		}
	})

	t.Run("Latest", func(t *testing.T) {
		repo := NewRunRepository(setupTestDB(t))
		older := newRun("pop", models.RunDone, models.RankedEntry{Artist: "Old", Count: 1})
		newer := newRun("pop", models.RunDone, models.RankedEntry{Artist: "New", Count: 2})
		aborted := newRun("pop", models.RunAborted)
		for _, run := range []*models.Run{older, newer, aborted} {
			if err := repo.Create(ctx, run); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		got, err := repo.Latest(ctx, "pop")
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if got.ID != newer.ID || len(got.Entries) != 1 || got.Entries[0].Artist != "New" {
			t.Errorf("expected newest completed run, got %+v", got)
		}

		if _, err := repo.Latest(ctx, "jazz"); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRunRepository(db)
		run := newRun("pop", models.RunDone, models.RankedEntry{Artist: "A", Count: 1})
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if err := repo.Delete(ctx, run.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM run_entries").Scan(&n); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if n != 0 {
			t.Errorf("expected entries to be removed, found %d", n)
		}

		if err := repo.Delete(ctx, run.ID); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound on second delete, got %v", err)
		}
	})
}
