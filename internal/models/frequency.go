package models

import "slices"

// FrequencyMap counts occurrences per artist name and remembers first-seen order.
//
// Keys match exactly (case-sensitive). Every stored count is at least 1.
// The zero value is not usable; call [NewFrequencyMap].
type FrequencyMap struct {
	counts map[string]int
	order  []string
	total  int
}

// NewFrequencyMap returns an empty map.
func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{counts: make(map[string]int)}
}

// Increment adds one occurrence of name, inserting it with count 1 if absent.
func (m *FrequencyMap) Increment(name string) {
	if _, ok := m.counts[name]; !ok {
		m.order = append(m.order, name)
	}
	m.counts[name]++
	m.total++
}

// Count returns the occurrences recorded for name (0 if absent).
func (m *FrequencyMap) Count(name string) int {
	return m.counts[name]
}

// Len returns the number of distinct artists.
func (m *FrequencyMap) Len() int {
	return len(m.order)
}

// Total returns the number of occurrences recorded across all artists.
func (m *FrequencyMap) Total() int {
	return m.total
}

// Keys returns the artist names in first-seen order.
func (m *FrequencyMap) Keys() []string {
	return slices.Clone(m.order)
}

// Entries returns (artist, count) pairs in first-seen order.
func (m *FrequencyMap) Entries() []RankedEntry {
	entries := make([]RankedEntry, len(m.order))
	for i, name := range m.order {
		entries[i] = RankedEntry{Artist: name, Count: m.counts[name]}
	}
	return entries
}
