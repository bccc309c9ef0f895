package tasks

import (
	"cmp"
	"slices"

	"github.com/desertthunder/seatify/internal/models"
)

// Ingest records the lead artist of every present track on page.
//
// Absent slots and tracks without credited artists are skipped.
func Ingest(page *models.PlaylistPage, m *models.FrequencyMap) {
	for _, track := range page.Tracks {
		if name, ok := track.LeadArtist(); ok {
			m.Increment(name)
		}
	}
}

// skipped returns how many slots on page [Ingest] ignores.
func skipped(page *models.PlaylistPage) int {
	n := 0
	for _, track := range page.Tracks {
		if _, ok := track.LeadArtist(); !ok {
			n++
		}
	}
	return n
}

// Rank orders the artists in m by count, highest first. Equal counts keep first-seen order.
func Rank(m *models.FrequencyMap) []models.RankedEntry {
	entries := m.Entries()
	slices.SortStableFunc(entries, func(a, b models.RankedEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return entries
}
