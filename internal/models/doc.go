// Package models defines the values that flow through the seatify pipeline.
//
// The pipeline is strictly forward:
//   - [PlaylistPage] : track slots fetched from a category's playlist collection; nil slots are unavailable tracks
//   - [FrequencyMap] : per-category artist counts, keyed by exact name, remembering first-seen order
//   - [RankedEntry] : an (artist, count) pair produced by ranking a [FrequencyMap]
//   - [Report] : the fixed-shape, banded table rendered for a category
//
// [Run] is the optional persisted record of a category run and its ranking.
package models
