package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

// FixturePage is the file representation of a page: each slot is the artist credit list of a track, or null.
type FixturePage struct {
	Tracks [][]string `json:"tracks"`
}

// FixtureSource serves pages recorded in a JSON file keyed by category, for offline runs and tests.
//
//	{"party": [{"tracks": [["Artist A", "Feat. B"], null]}, {"tracks": [["Artist C"]]}]}
type FixtureSource struct {
	pages map[models.Category][]FixturePage
}

// NewFixtureSource builds a source from in-memory pages.
func NewFixtureSource(pages map[models.Category][]FixturePage) *FixtureSource {
	return &FixtureSource{pages: pages}
}

// LoadFixtureSource reads a fixture file.
func LoadFixtureSource(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var pages map[models.Category][]FixturePage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("%w: failed to parse fixture %s: %v", shared.ErrInvalidInput, path, err)
	}

	return NewFixtureSource(pages), nil
}

func (s *FixtureSource) Name() string {
	return "Fixture"
}

// FetchPage returns the page at the index encoded by cursor.
func (s *FixtureSource) FetchPage(ctx context.Context, category models.Category, cursor string) (*models.PlaylistPage, error) {
	pages, ok := s.pages[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %s", shared.ErrAPIRequest, category)
	}

	idx := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 || n >= len(pages) {
			return nil, fmt.Errorf("%w: invalid cursor %q", shared.ErrAPIRequest, cursor)
		}
		idx = n
	}

	page := &models.PlaylistPage{Total: len(pages)}
	if idx < len(pages) {
		for _, slot := range pages[idx].Tracks {
			if slot == nil {
				page.Tracks = append(page.Tracks, nil)
				continue
			}
			page.Tracks = append(page.Tracks, &models.Track{Artists: slot})
		}
		page.Playlists = 1
	}
	if idx+1 < len(pages) {
		page.Cursor = strconv.Itoa(idx + 1)
	}

	return page, nil
}
