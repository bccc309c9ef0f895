// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"testing"

	"github.com/desertthunder/seatify/internal/models"
)

// FakeFetcher is a test double for [services.PageFetcher] that serves scripted pages in order.
//
// Page i carries cursor "i+1" unless it is the last page. Calls records every cursor requested.
type FakeFetcher struct {
	Pages map[models.Category][]*models.PlaylistPage
	Err   map[models.Category]error // returned instead of the page at index FailAt
	// FailAt is the page index at which Err is returned (0 = first fetch)
	FailAt int
	Calls  []string
}

// NewFakeFetcher builds a fetcher for a single category from track slot lists; nil slots are absent tracks.
func NewFakeFetcher(category models.Category, pages ...[]*models.Track) *FakeFetcher {
	f := &FakeFetcher{Pages: map[models.Category][]*models.PlaylistPage{}}
	f.Add(category, pages...)
	return f
}

// Add registers pages for category, chaining them with cursors.
func (f *FakeFetcher) Add(category models.Category, pages ...[]*models.Track) {
	var result []*models.PlaylistPage
	for i, tracks := range pages {
		page := &models.PlaylistPage{Tracks: tracks, Playlists: 1, Total: len(pages)}
		if i+1 < len(pages) {
			page.Cursor = strconv.Itoa(i + 1)
		}
		result = append(result, page)
	}
	f.Pages[category] = result
}

func (f *FakeFetcher) Name() string { return "fake" }

func (f *FakeFetcher) FetchPage(ctx context.Context, category models.Category, cursor string) (*models.PlaylistPage, error) {
	f.Calls = append(f.Calls, cursor)

	idx := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, errors.New("bad cursor")
		}
		idx = n
	}

	if err, ok := f.Err[category]; ok && idx == f.FailAt {
		return nil, err
	}

	pages := f.Pages[category]
	if idx >= len(pages) {
		return nil, errors.New("page out of range")
	}
	return pages[idx], nil
}

// T is shorthand for a present track credited to artists.
func T(artists ...string) *models.Track {
	return &models.Track{Artists: artists}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
