// package services defines the PageFetcher interface for paginated playlist providers
//
// Spotify (Web API), fixture files (offline runs)
package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

// PageFetcher retrieves one page of a category's playlist collection.
type PageFetcher interface {
	// FetchPage returns the page addressed by cursor. The empty cursor addresses the first page.
	// The returned page's Cursor is empty when no page follows it.
	FetchPage(ctx context.Context, category models.Category, cursor string) (*models.PlaylistPage, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

// Pages returns a lazy sequence over every page of category, starting from the first page on each call.
//
// The sequence ends after the first page without a cursor. A fetch error is yielded once and ends the sequence;
// so does a cursor that was already followed.
func Pages(ctx context.Context, f PageFetcher, category models.Category) iter.Seq2[*models.PlaylistPage, error] {
	return func(yield func(*models.PlaylistPage, error) bool) {
		seen := map[string]bool{}
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			page, err := f.FetchPage(ctx, category, cursor)
			if err != nil {
				yield(nil, err)
				return
			}

			if !yield(page, nil) || !page.HasNext() {
				return
			}

			if seen[page.Cursor] {
				yield(nil, fmt.Errorf("%w: %s returned cursor %q twice", shared.ErrAPIRequest, f.Name(), page.Cursor))
				return
			}
			seen[page.Cursor] = true
			cursor = page.Cursor
		}
	}
}
