// Package services defines the [PageFetcher] interface for cursor-paginated playlist providers and implements it
// for Spotify and for offline fixture files.
//
// # Pagination
//
// [Pages] turns a [PageFetcher] into a lazy iterator. The first fetch uses the empty cursor, every following fetch
// uses the previous page's cursor, and the sequence ends at the first page without one. Errors end the sequence.
//
// # Spotify Implementation
//
// [SpotifySource] wraps [spotify.Client]. One page corresponds to one page of a browse category's playlists; each
// listed playlist is expanded through its item pages, so a page carries every track slot of those playlists.
// Removed tracks and podcast episodes become nil slots.
//
// [NewSpotifyHTTPClient] authorizes with the OAuth2 client-credentials flow ([clientcredentials.Config]); the
// token is refreshed automatically by the returned client.
//
// # Rate Limiting
//
// All outbound requests go through [NewLimitedClient], a [rate.Limiter] wrapped around the transport.
//
// # Error Handling
//
// Failures are wrapped with typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : client_id or client_secret not configured
//   - [shared.ErrAPIRequest] : HTTP request failed, provider returned an error, or a cursor was malformed
//
// The provider's own error (e.g. [spotify.Error]) stays in the chain for [errors.As].
package services
