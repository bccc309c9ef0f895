// package tasks implements the per-category ranking pipeline.
//
// The core abstraction is CategoryRunner, which pages through a category, ranks its artists, and renders the report.
// Runs emit progress updates via channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/seatify/internal/formatter"
	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/services"
	"github.com/desertthunder/seatify/internal/shared"
)

// Options controls a [CategoryRunner].
type Options struct {
	Rows        int    // data rows per report
	Incremental bool   // re-render after every non-terminal page
	OnError     string // [shared.OnErrorAbort] (default) or [shared.OnErrorContinue]
}

// RunRecorder persists finished category runs.
type RunRecorder interface {
	Create(ctx context.Context, run *models.Run) error
}

// CategoryResult contains the outcome of one category run.
type CategoryResult struct {
	models.Run
	Report *models.Report // nil when the run aborted before rendering
	Err    error
}

// CategoryRunner drives categories through Paginating → Ranking → Rendering → Done, or Aborted on failure.
//
// Each category owns a fresh [models.FrequencyMap]; nothing is shared between categories.
type CategoryRunner struct {
	source   services.PageFetcher
	sink     formatter.ReportSink
	recorder RunRecorder
	logger   *log.Logger
	opts     Options
	batchID  string
}

// NewCategoryRunner creates a runner reading from source and writing through sink.
func NewCategoryRunner(source services.PageFetcher, sink formatter.ReportSink, logger *log.Logger, opts Options) *CategoryRunner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if opts.OnError == "" {
		opts.OnError = shared.OnErrorAbort
	}
	return &CategoryRunner{
		source:  source,
		sink:    sink,
		logger:  logger,
		opts:    opts,
		batchID: shared.GenerateID(),
	}
}

// WithRecorder records every finished run, successful or aborted.
func (r *CategoryRunner) WithRecorder(rec RunRecorder) *CategoryRunner {
	r.recorder = rec
	return r
}

// BatchID identifies the runs started by this runner.
func (r *CategoryRunner) BatchID() string {
	return r.batchID
}

// sendProgress sends a progress update through the channel without blocking.
func (r *CategoryRunner) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run processes a single category.
//
// Pages are ingested as they arrive; the report is rendered once after the terminal page (and additionally after
// every non-terminal page in incremental mode). A fetch or render failure aborts the category with an error wrapping
// [shared.ErrCategoryAborted]; the returned result is non-nil in that case too.
func (r *CategoryRunner) Run(ctx context.Context, category models.Category, progress chan<- ProgressUpdate) (*CategoryResult, error) {
	if r.source == nil || r.sink == nil {
		return nil, fmt.Errorf("%w: source and sink are required", shared.ErrServiceUnavailable)
	}
	if r.opts.Rows <= 0 {
		return nil, fmt.Errorf("%w: report rows must be positive, got %d", shared.ErrInvalidArgument, r.opts.Rows)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category", shared.ErrMissingArgument)
	}

	logger := shared.WithLogger(r.logger, "category", category)
	result := &CategoryResult{Run: models.Run{
		ID:        shared.GenerateID(),
		BatchID:   r.batchID,
		Category:  category,
		StartedAt: time.Now().UTC(),
	}}

	freq := models.NewFrequencyMap()
	playlists := 0

	r.sendProgress(progress, startUpdate(category))
	logger.Debug("paginating", "source", r.source.Name())

	for page, err := range services.Pages(ctx, r.source, category) {
		if err != nil {
			return r.abort(ctx, result, progress, err)
		}

		Ingest(page, freq)
		result.Pages++
		result.Tracks += len(page.Tracks)
		result.Skipped += skipped(page)
		playlists += page.Playlists

		r.sendProgress(progress, pageUpdate(category, result.Pages, playlists, page))
		logger.Debug("page ingested", "page", result.Pages, "tracks", len(page.Tracks), "artists", freq.Len())

		if r.opts.Incremental && page.HasNext() {
			if _, _, err := r.render(category, freq, progress, false); err != nil {
				return r.abort(ctx, result, progress, err)
			}
		}
	}

	report, path, err := r.render(category, freq, progress, true)
	if err != nil {
		return r.abort(ctx, result, progress, err)
	}

	result.Report = report
	result.ReportPath = path
	result.Entries = Rank(freq)
	result.Artists = freq.Len()
	result.Status = models.RunDone
	result.FinishedAt = time.Now().UTC()

	r.record(ctx, logger, result)
	r.sendProgress(progress, doneUpdate(result))
	logger.Info("category done", "artists", result.Artists, "tracks", result.Tracks, "report", result.ReportPath)

	return result, nil
}

// RunAll processes categories sequentially in order.
//
// With [shared.OnErrorAbort] the first failed category stops the batch and its error is returned. With
// [shared.OnErrorContinue] failures are logged and the remaining categories still run; the joined errors are
// returned at the end. Results cover every category attempted.
func (r *CategoryRunner) RunAll(ctx context.Context, categories []models.Category, progress chan<- ProgressUpdate) ([]*CategoryResult, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category", shared.ErrMissingArgument)
	}

	var results []*CategoryResult
	var failures []error

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := r.Run(ctx, category, progress)
		if result != nil {
			results = append(results, result)
		}
		if err == nil {
			continue
		}

		if r.opts.OnError != shared.OnErrorContinue || result == nil || ctx.Err() != nil {
			return results, err
		}

		r.logger.Warn("category aborted, continuing", "category", category, "error", err)
		failures = append(failures, err)
	}

	return results, errors.Join(failures...)
}

// render ranks freq and writes it through the sink. final marks the post-pagination render.
func (r *CategoryRunner) render(category models.Category, freq *models.FrequencyMap, progress chan<- ProgressUpdate, final bool) (*models.Report, string, error) {
	r.sendProgress(progress, rankingUpdate(category, freq.Len()))

	report, err := formatter.BuildReport(Rank(freq), category, r.opts.Rows)
	if err != nil {
		return nil, "", err
	}

	r.sendProgress(progress, renderingUpdate(category, r.opts.Rows, final))
	path, err := r.sink.Render(report)
	if err != nil {
		return nil, "", err
	}

	return report, path, nil
}

func (r *CategoryRunner) abort(ctx context.Context, result *CategoryResult, progress chan<- ProgressUpdate, cause error) (*CategoryResult, error) {
	err := fmt.Errorf("%w: %s: %w", shared.ErrCategoryAborted, result.Category, cause)

	result.Err = err
	result.Error = cause.Error()
	result.Status = models.RunAborted
	result.FinishedAt = time.Now().UTC()

	logger := shared.WithLogger(r.logger, "category", result.Category)
	r.record(context.WithoutCancel(ctx), logger, result)
	r.sendProgress(progress, abortedUpdate(result.Category, cause))
	logger.Error("category aborted", "pages", result.Pages, "error", cause)

	return result, err
}

// record stores the run when a recorder is configured. Failures are logged, not returned.
func (r *CategoryRunner) record(ctx context.Context, logger *log.Logger, result *CategoryResult) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Create(ctx, &result.Run); err != nil {
		logger.Warn("failed to record run", "run", shared.ShortID(result.ID), "error", err)
	}
}
