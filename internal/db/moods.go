package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// historyLimit caps how many results a history query returns.
const historyLimit = 100

// MoodResultRepository handles mood-result database operations.
type MoodResultRepository struct {
	pool *pgxpool.Pool
}

// Insert stores a new mood result.
func (r *MoodResultRepository) Insert(ctx context.Context, result *MoodResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO mood_results (id, user_id, energetic, calm, introspective, adventurous, dominant_mood, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		result.Scores.Energetic,
		result.Scores.Calm,
		result.Scores.Introspective,
		result.Scores.Adventurous,
		result.Dominant,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting mood result: %w", err)
	}
	return nil
}

// ListByUser returns a user's mood results, newest first. An unknown user
// yields an empty slice, not an error.
func (r *MoodResultRepository) ListByUser(ctx context.Context, userID string) ([]MoodResult, error) {
	query := `
		SELECT id, user_id, energetic, calm, introspective, adventurous, dominant_mood, created_at
		FROM mood_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("querying mood results: %w", err)
	}
	defer rows.Close()

	var results []MoodResult
	for rows.Next() {
		var m MoodResult
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Scores.Energetic,
			&m.Scores.Calm,
			&m.Scores.Introspective,
			&m.Scores.Adventurous,
			&m.Dominant,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning mood result: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading mood results: %w", err)
	}
	return results, nil
}
