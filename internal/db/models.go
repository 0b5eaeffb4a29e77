package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripify/go-mood-playlist/internal/quiz"
	"github.com/tripify/go-mood-playlist/internal/recommend"
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// MoodResult is one scored quiz submission. Results are append-only
// history; they are never updated or deleted.
type MoodResult struct {
	ID        uuid.UUID
	UserID    string // as supplied by the client; guests allowed
	Scores    quiz.Vector
	Dominant  quiz.Mood
	CreatedAt time.Time
}

// Playlist is a playlist created on Spotify for a user.
type Playlist struct {
	ID                uuid.UUID
	UserID            string
	Mood              string
	SpotifyPlaylistID string
	Name              string
	URL               string
	TrackCount        int
	Tracks            []recommend.Track
	CreatedAt         time.Time
}
