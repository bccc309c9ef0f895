// package models defines the data model for the artist ranking pipeline
package models

import "time"

// Category identifies a provider playlist collection (e.g. "party", "hiphop", "pop").
type Category string

func (c Category) String() string { return string(c) }

// Track is an artist credit record. Artists are in credit order.
type Track struct {
	Artists []string
}

// LeadArtist returns the first credited artist.
func (t *Track) LeadArtist() (string, bool) {
	if t == nil || len(t.Artists) == 0 {
		return "", false
	}
	return t.Artists[0], true
}

// PlaylistPage is one batch of track slots from a category's playlist collection.
//
// A nil slot is a removed or unavailable track. An empty Cursor marks the last page.
type PlaylistPage struct {
	Tracks    []*Track
	Cursor    string
	Playlists int // playlists expanded into this page
	Total     int // playlists in the whole collection, as reported by the provider
}

// HasNext reports whether another page follows this one.
func (p *PlaylistPage) HasNext() bool {
	return p.Cursor != ""
}

// RankedEntry is an artist and its occurrence count.
type RankedEntry struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// Band is the visual band of a report data row.
type Band int

const (
	BandPrimary Band = iota
	BandSecondary
)

func (b Band) String() string {
	switch b {
	case BandPrimary:
		return "primary"
	case BandSecondary:
		return "secondary"
	default:
		return ""
	}
}

// Next returns the band of the row that follows a row in band b.
func (b Band) Next() Band {
	if b == BandPrimary {
		return BandSecondary
	}
	return BandPrimary
}

// ReportRow is one data row. A nil Entry is a blank row.
type ReportRow struct {
	Entry *RankedEntry
	Band  Band
}

// Report is the fixed-shape table for a category: a header plus exactly len(Rows) data rows.
type Report struct {
	Category Category
	Header   [2]string
	Rows     []ReportRow
}

// Filled returns the number of non-blank data rows.
func (r *Report) Filled() int {
	n := 0
	for _, row := range r.Rows {
		if row.Entry != nil {
			n++
		}
	}
	return n
}

// RunStatus is the terminal state of a category run.
type RunStatus string

const (
	RunDone    RunStatus = "done"
	RunAborted RunStatus = "aborted"
)

// Run is the persisted record of one category run.
type Run struct {
	ID         string        `json:"id"`
	Sequence   int           `json:"sequence"` // human-readable run number, assigned on insert
	BatchID    string        `json:"batch_id"`
	Category   Category      `json:"category"`
	Status     RunStatus     `json:"status"`
	Pages      int           `json:"pages"`
	Tracks     int           `json:"tracks"`
	Skipped    int           `json:"skipped"`
	Artists    int           `json:"artists"`
	ReportPath string        `json:"report_path,omitempty"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Entries    []RankedEntry `json:"entries,omitempty"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
