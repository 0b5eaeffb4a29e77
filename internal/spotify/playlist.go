package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/tripify/go-mood-playlist/internal/recommend"
)

const maxTracksPerRequest = 100

// CreatePlaylist creates a public playlist for the given user.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string) (recommend.PlaylistInfo, error) {
	if err := c.wait(ctx); err != nil {
		return recommend.PlaylistInfo{}, err
	}

	playlist, err := c.api.CreatePlaylistForUser(ctx, userID, name, description, true, false)
	if err != nil {
		return recommend.PlaylistInfo{}, fmt.Errorf("creating playlist: %w", err)
	}

	return recommend.PlaylistInfo{
		ID:  playlist.ID.String(),
		URL: playlist.ExternalURLs["spotify"],
	}, nil
}

// AddTracks adds tracks to a playlist by URI, batching requests since
// Spotify allows at most 100 tracks per call.
func (c *Client) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	ids := make([]spotify.ID, 0, len(uris))
	for _, uri := range uris {
		if id := uriToID(uri); id != "" {
			ids = append(ids, spotify.ID(id))
		}
	}

	for i := 0; i < len(ids); i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, len(ids))
		batch := ids[i:end]

		if err := c.wait(ctx); err != nil {
			return err
		}
		if _, err := c.api.AddTracksToPlaylist(ctx, spotify.ID(playlistID), batch...); err != nil {
			return fmt.Errorf("adding tracks (batch %d-%d): %w", i+1, end, err)
		}
	}

	return nil
}

// uriToID extracts the track ID from a "spotify:track:<id>" URI. Bare IDs
// pass through unchanged.
func uriToID(uri string) string {
	if i := strings.LastIndex(uri, ":"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
