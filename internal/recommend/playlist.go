package recommend

import (
	"context"
	"fmt"
	"strings"
)

// appName is the prefix for generated playlist names.
const appName = "Tripify"

// PlaylistSummary describes a playlist created on the provider.
type PlaylistSummary struct {
	ProviderPlaylistID string
	Name               string
	URL                string
	TracksAdded        int
	Tracks             []Track
}

// CreatePlaylist recommends tracks for the mood and creates a playlist with
// them in the provider account behind the session. Tracks without a playable
// URI are skipped, not counted as failures. Unlike Recommend, provider
// errors here propagate: creating a playlist is an action the caller needs
// to know failed.
func (r *Recommender) CreatePlaylist(ctx context.Context, provider Provider, mood string, limit int) (*PlaylistSummary, error) {
	tracks := r.Recommend(ctx, provider, mood, limit)

	userID, err := provider.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting provider user: %w", err)
	}

	name := fmt.Sprintf("%s – %s Mix", appName, capitalize(mood))
	description := fmt.Sprintf("A playlist generated based on your %s mood from %s.", strings.ToLower(mood), appName)

	info, err := provider.CreatePlaylist(ctx, userID, name, description)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.URI != "" {
			uris = append(uris, t.URI)
		}
	}

	if len(uris) > 0 {
		if err := provider.AddTracks(ctx, info.ID, uris); err != nil {
			return nil, fmt.Errorf("adding tracks: %w", err)
		}
	}

	return &PlaylistSummary{
		ProviderPlaylistID: info.ID,
		Name:               name,
		URL:                info.URL,
		TracksAdded:        len(uris),
		Tracks:             tracks,
	}, nil
}

// capitalize upper-cases the first rune of a lowercased mood label.
func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
