package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/seatify/internal/formatter"
	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/repositories"
	"github.com/desertthunder/seatify/internal/shared"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// openHistory opens the run history named by the loaded config.
func (r *Runner) openHistory() (*sql.DB, *repositories.RunRepository, error) {
	db, err := shared.OpenHistory(r.config.Database)
	if errors.Is(err, shared.ErrHistoryDisabled) {
		return nil, nil, fmt.Errorf("%w: set [database] enabled = true in %s", err, r.configPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return db, repositories.NewRunRepository(db), nil
}

// History lists recorded runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{"category": cmd.String("category")}
	runs, err := repo.List(ctx, criteria, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		return r.writePlain("No runs recorded yet.\n")
	}

	r.writePlain("Found %d runs:\n\n", len(runs))
	for _, run := range runs {
		mark := "✓"
		if run.Status == models.RunAborted {
			mark = "✗"
		}
		r.writePlain("#%d %s %s %s\n", run.Sequence, mark, run.Category, shared.ShortID(run.ID))
		r.writePlain("   Started: %s (%s)\n", humanize.Time(run.StartedAt), run.Duration().Round(time.Millisecond))
		r.writePlain("   Tracks: %s, artists: %s\n", humanize.Comma(int64(run.Tracks)), humanize.Comma(int64(run.Artists)))
		if run.ReportPath != "" {
			r.writePlain("   Report: %s\n", run.ReportPath)
		}
		if run.Error != "" {
			r.writePlain("   Error: %s\n", run.Error)
		}
		r.writePlain("\n")
	}

	return nil
}

// Show prints the stored ranking of one run, chosen by --run or as the latest completed run of --category.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("run")
	category := cmd.String("category")
	if id == "" && category == "" {
		return fmt.Errorf("%w: --run or --category is required", shared.ErrMissingArgument)
	}

	top := cmd.Int("top")
	if top <= 0 {
		return fmt.Errorf("%w: --top must be positive", shared.ErrInvalidArgument)
	}

	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	var run *models.Run
	if id != "" {
		run, err = repo.Get(ctx, id)
	} else {
		run, err = repo.Latest(ctx, models.Category(category))
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(run, true)
	}

	r.writePlainHeader(fmt.Sprintf("Run #%d: %s", run.Sequence, run.Category))
	r.writePlain("ID: %s\n", run.ID)
	r.writePlain("Status: %s\n", run.Status)
	r.writePlain("Started: %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	r.writePlain("Pages: %d, tracks: %s, skipped: %s\n", run.Pages, humanize.Comma(int64(run.Tracks)), humanize.Comma(int64(run.Skipped)))
	if run.Error != "" {
		r.writePlain("Error: %s\n", run.Error)
	}

	if len(run.Entries) == 0 {
		return r.writePlain("\nNo ranked artists.\n")
	}

	report, err := formatter.BuildReport(run.Entries, run.Category, min(top, len(run.Entries)))
	if err != nil {
		return err
	}
	return r.writePlain("\n%s\n", formatter.RenderTable(report, false))
}
