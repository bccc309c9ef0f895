package models

import (
	"slices"
	"testing"
	"time"
)

func TestFrequencyMap(t *testing.T) {
	t.Run("Increment keeps first-seen order", func(t *testing.T) {
		m := NewFrequencyMap()
		for _, name := range []string{"B", "A", "B", "C", "A", "B"} {
			m.Increment(name)
		}

		if !slices.Equal(m.Keys(), []string{"B", "A", "C"}) {
			t.Errorf("expected first-seen order [B A C], got %v", m.Keys())
		}
		if m.Count("B") != 3 || m.Count("A") != 2 || m.Count("C") != 1 {
			t.Errorf("unexpected counts B=%d A=%d C=%d", m.Count("B"), m.Count("A"), m.Count("C"))
		}
		if m.Len() != 3 {
			t.Errorf("expected 3 artists, got %d", m.Len())
		}
		if m.Total() != 6 {
			t.Errorf("expected total 6, got %d", m.Total())
		}
	})

	t.Run("keys are case-sensitive", func(t *testing.T) {
		m := NewFrequencyMap()
		m.Increment("drake")
		m.Increment("Drake")

		if m.Len() != 2 {
			t.Errorf("expected 2 distinct artists, got %d", m.Len())
		}
	})

	t.Run("Count of missing artist is zero", func(t *testing.T) {
		if got := NewFrequencyMap().Count("nobody"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("Keys returns a copy", func(t *testing.T) {
		m := NewFrequencyMap()
		m.Increment("A")
		keys := m.Keys()
		keys[0] = "Z"

		if m.Keys()[0] != "A" {
			t.Error("mutating Keys() result should not affect the map")
		}
	})

	t.Run("Entries", func(t *testing.T) {
		m := NewFrequencyMap()
		m.Increment("A")
		m.Increment("B")
		m.Increment("A")

		want := []RankedEntry{{Artist: "A", Count: 2}, {Artist: "B", Count: 1}}
		if !slices.Equal(m.Entries(), want) {
			t.Errorf("expected %v, got %v", want, m.Entries())
		}
	})
}

func TestTrack(t *testing.T) {
	tc := []struct {
		name  string
		track *Track
		want  string
		ok    bool
	}{
		{name: "nil track", track: nil, want: "", ok: false},
		{name: "no artists", track: &Track{}, want: "", ok: false},
		{name: "single artist", track: &Track{Artists: []string{"A"}}, want: "A", ok: true},
		{name: "features", track: &Track{Artists: []string{"A", "B", "C"}}, want: "A", ok: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.track.LeadArtist()
			if got != tt.want || ok != tt.ok {
				t.Errorf("LeadArtist() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBand(t *testing.T) {
	if BandPrimary.Next() != BandSecondary || BandSecondary.Next() != BandPrimary {
		t.Error("bands should alternate with a period of two")
	}
	if BandPrimary.String() != "primary" || BandSecondary.String() != "secondary" {
		t.Errorf("unexpected band names %s, %s", BandPrimary, BandSecondary)
	}
}

func TestReport(t *testing.T) {
	r := Report{Rows: []ReportRow{
		{Entry: &RankedEntry{Artist: "A", Count: 1}},
		{},
		{Entry: &RankedEntry{Artist: "B", Count: 1}},
	}}
	if r.Filled() != 2 {
		t.Errorf("expected 2 filled rows, got %d", r.Filled())
	}
}

func TestRunDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	run := Run{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	if run.Duration() != 90*time.Second {
		t.Errorf("expected 90s, got %v", run.Duration())
	}
}

func TestPlaylistPage(t *testing.T) {
	if (&PlaylistPage{}).HasNext() {
		t.Error("page without cursor should be the last page")
	}
	if !(&PlaylistPage{Cursor: "next"}).HasNext() {
		t.Error("page with cursor should have a next page")
	}
}
