package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/desertthunder/seatify/internal/formatter"
	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/repositories"
	"github.com/desertthunder/seatify/internal/services"
	"github.com/desertthunder/seatify/internal/shared"
	"github.com/desertthunder/seatify/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// Rank ranks every requested category and writes one report per category.
func (r *Runner) Rank(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if categories := cmd.StringSlice("category"); len(categories) > 0 {
		config.Source.Categories = categories
	}
	if cmd.IsSet("rows") {
		config.Report.Rows = cmd.Int("rows")
	}
	if format := cmd.String("format"); format != "" {
		config.Report.Format = format
	}
	if out := cmd.String("out"); out != "" {
		config.Report.OutputDir = out
	}
	if country := cmd.String("country"); country != "" {
		config.Source.Country = country
	}
	if cmd.Bool("incremental") {
		config.Report.Incremental = true
	}
	if onError := cmd.String("on-error"); onError != "" {
		config.Run.OnError = onError
	}

	if err := config.Validate(); err != nil {
		return err
	}

	source, err := r.pageSource(ctx, &config, cmd.String("fixture"))
	if err != nil {
		return err
	}

	sink, err := formatter.NewSink(config.Report.Format, config.Report.OutputDir)
	if err != nil {
		return err
	}

	runner := tasks.NewCategoryRunner(source, sink, r.logger, tasks.Options{
		Rows:        config.Report.Rows,
		Incremental: config.Report.Incremental,
		OnError:     config.Run.OnError,
	})

	if config.Database.Enabled {
		db, err := shared.OpenHistory(config.Database)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer db.Close()
		runner.WithRecorder(repositories.NewRunRepository(db))
	}

	categories := make([]models.Category, len(config.Source.Categories))
	for i, c := range config.Source.Categories {
		categories[i] = models.Category(c)
	}

	useJSON := cmd.Bool("json")
	r.logger.Info("ranking categories", "categories", config.Source.Categories, "source", source.Name(), "rows", config.Report.Rows)

	var results []*tasks.CategoryResult
	var runErr error
	if useJSON {
		results, runErr = runner.RunAll(ctx, categories, nil)
	} else {
		progressCh := make(chan tasks.ProgressUpdate, 50)
		done := make(chan struct{})
		go func() {
			printProgress(r.output, progressCh)
			close(done)
		}()

		results, runErr = runner.RunAll(ctx, categories, progressCh)
		close(progressCh)
		<-done
	}

	if useJSON {
		runs := make([]models.Run, len(results))
		for i, result := range results {
			runs[i] = result.Run
		}
		if err := r.writeJSON(runs, true); err != nil {
			return err
		}
		return runErr
	}

	r.writePlain("\n")
	r.writePlainHeader("Ranking Complete")
	for _, result := range results {
		r.writeResult(result)
	}

	if cmd.Bool("preview") {
		preview := &formatter.TerminalSink{W: r.output}
		for _, result := range results {
			if result.Report == nil {
				continue
			}
			r.writePlain("\n")
			if _, err := preview.Render(result.Report); err != nil {
				return err
			}
		}
	}

	return runErr
}

// pageSource returns the injected source, a fixture source, or a Spotify source built from config.
func (r *Runner) pageSource(ctx context.Context, config *shared.Config, fixture string) (services.PageFetcher, error) {
	if r.source != nil {
		return r.source, nil
	}
	if fixture != "" {
		return services.LoadFixtureSource(fixture)
	}

	timeout, err := config.Source.Timeout()
	if err != nil {
		return nil, err
	}

	client, err := services.NewSpotifyHTTPClient(ctx, config.Credentials.Spotify.Map(), config.Source.RequestsPerSecond, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w (set them in %s or SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET)", err, r.configPath)
	}

	return services.NewSpotifySource(client, services.SpotifyOptions{
		Country:       config.Source.Country,
		PageSize:      config.Source.PageSize,
		TrackPageSize: config.Source.TrackPageSize,
	}), nil
}

func (r *Runner) writeResult(result *tasks.CategoryResult) {
	if result.Status == models.RunAborted {
		r.writePlain("✗ %s: %s\n", result.Category, result.Error)
		return
	}

	r.writePlain("✓ %s: %s artists from %s tracks (%s skipped) in %s pages\n",
		result.Category,
		humanize.Comma(int64(result.Artists)),
		humanize.Comma(int64(result.Tracks)),
		humanize.Comma(int64(result.Skipped)),
		humanize.Comma(int64(result.Pages)),
	)
	if result.ReportPath != "" {
		r.writePlain("  Report: %s\n", result.ReportPath)
	}
	if len(result.Entries) > 0 {
		top := result.Entries[0]
		r.writePlain("  Top artist: %s (%s entries)\n", top.Artist, humanize.Comma(int64(top.Count)))
	}
}

// printProgress writes one line per update until updates is closed, with a bar while paginating.
func printProgress(w io.Writer, updates <-chan tasks.ProgressUpdate) {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	for update := range updates {
		switch update.Phase {
		case tasks.Paginating:
			if update.Total > 0 {
				fmt.Fprintf(w, "📥 %s %s\n", bar.ViewAs(update.Fraction()), update.Message)
			} else {
				fmt.Fprintf(w, "📥 %s\n", update.Message)
			}
		case tasks.Ranking, tasks.Rendering:
			fmt.Fprintf(w, "   %s\n", update.Message)
		case tasks.Done, tasks.Aborted:
			fmt.Fprintf(w, "%s\n", update.Message)
		}
	}
}
