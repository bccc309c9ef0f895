// Package tasks ranks the lead artists of a category's playlists with real-time progress reporting.
//
// # Pipeline
//
// For each category, [CategoryRunner.Run]:
//
//  1. Paginating : pulls pages from a [services.PageFetcher] and folds each one into a fresh
//     [models.FrequencyMap] with [Ingest] before the next page is fetched
//  2. Ranking : orders artists with [Rank] (count descending, ties in first-seen order)
//  3. Rendering : shapes the ranking into a fixed-size report and writes it through a [formatter.ReportSink]
//
// The run ends Done, or Aborted on a fetch or render failure. [CategoryRunner.RunAll] processes categories one at a
// time in list order and applies the failure policy ("abort" or "continue").
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains category, phase, step counters, messages, and optional data.
// Updates use select with default to prevent blocking.
//
// # Run History
//
// The optional [RunRecorder] interface stores every finished run (repositories.RunRepository).
// Recording errors are logged and never fail the run.
package tasks
