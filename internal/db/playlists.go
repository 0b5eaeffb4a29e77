package db

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripify/go-mood-playlist/internal/recommend"
)

// PlaylistRepository handles playlist database operations.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

// Insert stores a created playlist, tracks serialized as JSONB.
func (r *PlaylistRepository) Insert(ctx context.Context, playlist *Playlist) error {
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now()
	}

	tracks := playlist.Tracks
	if tracks == nil {
		tracks = []recommend.Track{}
	}
	trackJSON, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("encoding tracks: %w", err)
	}

	query := `
		INSERT INTO playlists (id, user_id, mood, spotify_playlist_id, name, url, track_count, tracks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.pool.Exec(ctx, query,
		playlist.ID,
		playlist.UserID,
		playlist.Mood,
		playlist.SpotifyPlaylistID,
		playlist.Name,
		playlist.URL,
		playlist.TrackCount,
		trackJSON,
		playlist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting playlist: %w", err)
	}
	return nil
}

// ListByUser returns a user's playlists, newest first.
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID string) ([]Playlist, error) {
	query := `
		SELECT id, user_id, mood, spotify_playlist_id, name, url, track_count, tracks, created_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("querying playlists: %w", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		var trackJSON []byte
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Mood,
			&p.SpotifyPlaylistID,
			&p.Name,
			&p.URL,
			&p.TrackCount,
			&trackJSON,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		if err := json.Unmarshal(trackJSON, &p.Tracks); err != nil {
			return nil, fmt.Errorf("decoding tracks: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading playlists: %w", err)
	}
	return playlists, nil
}
