package tasks

import (
	"fmt"

	"github.com/desertthunder/seatify/internal/models"
)

// ProgressUpdate represents a progress event during a category run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Category models.Category
	Phase    Phase  // Operation phase
	Step     int    // Current step number within phase
	Total    int    // Total steps in this phase (0 when unknown)
	Message  string // Human-readable message for display
	Data     any    // Optional phase-specific data
}

// Fraction returns Step/Total clamped to [0, 1], or 0 when Total is unknown.
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 0
	}
	return min(max(float64(u.Step)/float64(u.Total), 0), 1)
}

// Operation phase enumeration
type Phase int

const (
	Paginating Phase = iota
	Ranking
	Rendering
	Done
	Aborted
)

func (p Phase) String() string {
	switch p {
	case Paginating:
		return "paginating"
	case Ranking:
		return "ranking"
	case Rendering:
		return "rendering"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return ""
	}
}

func startUpdate(category models.Category) ProgressUpdate {
	return ProgressUpdate{
		Category: category,
		Phase:    Paginating,
		Message:  fmt.Sprintf("Fetching %s playlists...", category),
	}
}

// pageUpdate reports playlists expanded so far against the provider's total.
func pageUpdate(category models.Category, n, playlists int, page *models.PlaylistPage) ProgressUpdate {
	return ProgressUpdate{
		Category: category,
		Phase:    Paginating,
		Step:     playlists,
		Total:    page.Total,
		Message:  fmt.Sprintf("[page %d] %s: %d playlists, %d tracks", n, category, page.Playlists, len(page.Tracks)),
		Data:     page,
	}
}

func rankingUpdate(category models.Category, artists int) ProgressUpdate {
	return ProgressUpdate{
		Category: category,
		Phase:    Ranking,
		Step:     1,
		Total:    1,
		Message:  fmt.Sprintf("Ranking %d artists...", artists),
	}
}

func renderingUpdate(category models.Category, rows int, final bool) ProgressUpdate {
	msg := fmt.Sprintf("Rendering %d rows...", rows)
	if !final {
		msg = fmt.Sprintf("Rendering partial report (%d rows)...", rows)
	}
	return ProgressUpdate{
		Category: category,
		Phase:    Rendering,
		Step:     1,
		Total:    1,
		Message:  msg,
	}
}

func doneUpdate(result *CategoryResult) ProgressUpdate {
	return ProgressUpdate{
		Category: result.Category,
		Phase:    Done,
		Step:     1,
		Total:    1,
		Message:  fmt.Sprintf("✓ %s: %d artists from %d tracks", result.Category, result.Artists, result.Tracks),
		Data:     result,
	}
}

func abortedUpdate(category models.Category, err error) ProgressUpdate {
	return ProgressUpdate{
		Category: category,
		Phase:    Aborted,
		Message:  fmt.Sprintf("✗ %s: %v", category, err),
	}
}
