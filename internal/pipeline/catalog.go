// Package pipeline turns raw API payloads into catalog entries, derived
// statistics, and chart-ready series.
package pipeline

import (
	"strings"

	"github.com/theirongolddev/housedash/internal/model"
)

// CatalogEntry is a selectable location.
// Value is the lookup key sent back to the housing data endpoint.
type CatalogEntry struct {
	Display string `json:"display"`
	Value   string `json:"value"`
}

// BuildCatalog projects locations to catalog entries and drops repeated
// region names. The first occurrence of a region wins and input order is kept.
func BuildCatalog(locations []model.Location) []CatalogEntry {
	seen := make(map[string]struct{}, len(locations))
	entries := make([]CatalogEntry, 0, len(locations))
	for _, loc := range locations {
		if _, dup := seen[loc.RegionName]; dup {
			continue
		}
		seen[loc.RegionName] = struct{}{}
		entries = append(entries, CatalogEntry{
			Display: loc.Display(),
			Value:   loc.RegionName,
		})
	}
	return entries
}

// FilterCatalog returns the entries whose display or value contains query,
// ignoring case. An empty query returns the full catalog.
func FilterCatalog(entries []CatalogEntry, query string) []CatalogEntry {
	q := strings.ToLower(query)
	if q == "" {
		return entries
	}

	var out []CatalogEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Display), q) ||
			strings.Contains(strings.ToLower(e.Value), q) {
			out = append(out, e)
		}
	}
	return out
}

// FindEntry returns the entry with the given value.
func FindEntry(entries []CatalogEntry, value string) (CatalogEntry, bool) {
	for _, e := range entries {
		if e.Value == value {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
