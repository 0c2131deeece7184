// package catalog defines interface Service for free-text track search against
// external music catalogs
package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service defines the interface for music catalog providers that can search tracks by free text.
type Service interface {
	// SearchTracks searches the catalog for tracks matching the free-text query.
	// An empty query returns an empty result without contacting the provider.
	SearchTracks(ctx context.Context, query string) (*SearchResult, error)

	// SearchTracksRaw returns the provider's raw search response body, verbatim.
	// The proxy endpoint forwards this to callers without reshaping it.
	SearchTracksRaw(ctx context.Context, query string) ([]byte, error)

	// Name returns the name of the catalog provider (e.g., "Spotify")
	Name() string
}

// SearchResult mirrors the provider's track search response.
type SearchResult struct {
	Tracks TrackPage `json:"tracks"`
}

// TrackPage is one page of track results.
type TrackPage struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

// Track represents a catalog track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	DurationMS int      `json:"duration_ms"`
	URI        string   `json:"uri"`
}

// Artist represents a catalog artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayTitle renders the queue entry title for a track: the track name
// followed by its comma-joined artist names.
func (t Track) DisplayTitle() string {
	if len(t.Artists) == 0 {
		return t.Name
	}

	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	return fmt.Sprintf("%s — %s", t.Name, strings.Join(names, ", "))
}
