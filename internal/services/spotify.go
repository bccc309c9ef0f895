// Spotify Web API implementation of [PageFetcher]
//
// Endpoints: https://developer.spotify.com/documentation/web-api/reference/get-a-categories-playlists
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultCountry       = "US"
	defaultPageSize      = 50
	defaultTrackPageSize = 100
)

// SpotifyOptions configures a [SpotifySource].
type SpotifyOptions struct {
	Country       string // market for category playlists
	PageSize      int    // playlists per category page (max 50)
	TrackPageSize int    // items per playlist page (max 100)
	BaseURL       string // API base URL override, must end in "/"
}

// SpotifySource implements [PageFetcher] over a category's public playlists.
//
// One page holds every track slot of the playlists listed on one category page; each playlist's
// own item pages are followed to the end before the page is returned.
type SpotifySource struct {
	client        *spotify.Client
	country       string
	pageSize      int
	trackPageSize int
}

// NewSpotifyHTTPClient returns an HTTP client authorized with the client-credentials flow.
//
// credentials must carry "client_id" and "client_secret"; "token_url" overrides the Spotify accounts endpoint.
// Token and API requests share one rate limit of rps requests per second.
func NewSpotifyHTTPClient(ctx context.Context, credentials map[string]string, rps float64, timeout time.Duration) (*http.Client, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	base := NewLimitedClient(nil, rps, timeout)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return config.Client(ctx), nil
}

// NewSpotifySource creates a source that sends requests through httpClient.
func NewSpotifySource(httpClient *http.Client, opts SpotifyOptions) *SpotifySource {
	if opts.Country == "" {
		opts.Country = defaultCountry
	}
	if opts.PageSize <= 0 || opts.PageSize > 50 {
		opts.PageSize = defaultPageSize
	}
	if opts.TrackPageSize <= 0 || opts.TrackPageSize > 100 {
		opts.TrackPageSize = defaultTrackPageSize
	}

	var clientOpts []spotify.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(opts.BaseURL))
	}

	return &SpotifySource{
		client:        spotify.New(httpClient, clientOpts...),
		country:       opts.Country,
		pageSize:      opts.PageSize,
		trackPageSize: opts.TrackPageSize,
	}
}

func (s *SpotifySource) Name() string {
	return "Spotify"
}

// FetchPage requests the category page addressed by cursor (the provider's next URL, empty for the first page).
func (s *SpotifySource) FetchPage(ctx context.Context, category models.Category, cursor string) (*models.PlaylistPage, error) {
	offset, err := cursorOffset(cursor)
	if err != nil {
		return nil, err
	}

	page, err := s.client.GetCategoryPlaylists(ctx, string(category),
		spotify.Limit(s.pageSize), spotify.Offset(offset), spotify.Country(s.country))
	if err != nil {
		return nil, fmt.Errorf("%w: playlists for category %s at offset %d: %w", providerError(err), category, offset, err)
	}

	result := &models.PlaylistPage{Cursor: page.Next, Total: int(page.Total)}
	for _, playlist := range page.Playlists {
		// Unavailable playlists come back as null list items.
		if playlist.ID == "" {
			continue
		}

		tracks, err := s.PlaylistTracks(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		result.Tracks = append(result.Tracks, tracks...)
		result.Playlists++
	}

	return result, nil
}

// PlaylistTracks returns one slot per item of the playlist, following item pages to the end.
//
// Slots are nil for removed tracks and for podcast episodes.
func (s *SpotifySource) PlaylistTracks(ctx context.Context, id spotify.ID) ([]*models.Track, error) {
	items, err := s.client.GetPlaylistItems(ctx, id, spotify.Limit(s.trackPageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: items for playlist %s: %w", providerError(err), id, err)
	}

	var tracks []*models.Track
	for {
		for _, item := range items.Items {
			tracks = append(tracks, convertItem(item))
		}

		err = s.client.NextPage(ctx, items)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: items for playlist %s: %w", providerError(err), id, err)
		}
	}

	return tracks, nil
}

// providerError classifies a failed call: a refused token is [shared.ErrAuthFailed], anything else
// [shared.ErrAPIRequest].
func providerError(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return shared.ErrAuthFailed
	}
	return shared.ErrAPIRequest
}

// cursorOffset extracts the offset query parameter of a next URL.
//
// Category pages are wrapped in a "playlists" object, so the next URL cannot be decoded as a bare page.
func cursorOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	u, err := url.Parse(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor %q: %v", shared.ErrAPIRequest, cursor, err)
	}

	offset, err := strconv.Atoi(u.Query().Get("offset"))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: cursor %q has no valid offset", shared.ErrAPIRequest, cursor)
	}
	return offset, nil
}

func convertItem(item spotify.PlaylistItem) *models.Track {
	full := item.Track.Track
	if full == nil {
		return nil
	}

	artists := make([]string, len(full.Artists))
	for i, a := range full.Artists {
		artists[i] = a.Name
	}
	return &models.Track{Artists: artists}
}
