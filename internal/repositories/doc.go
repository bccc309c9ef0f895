// Package repositories implements SQLite persistence for run history.
//
// [RunRepository] stores one row per category run (status, page and track counters, report path, error) plus the
// run's full ranking in run_entries. Runs are written once, after they finish, and never read back by the pipeline;
// history is a record for the history and show commands, not a resume mechanism.
//
// Sequence numbers provide stable, human-readable ordering (e.g. run #42) independent of UUIDs and timestamps.
// The [NextSequence] function increments the per-table counter in a dedicated sequence table, inside the
// caller's transaction.
package repositories
