package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

// SwipeRepository persists swipe telemetry and liked-outfit snapshots.
// Persistence is best-effort: a nil repository is valid and records nothing.
type SwipeRepository struct {
	db *sql.DB
}

func NewSwipeRepository(db *sql.DB) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// RecordSwipe stores one swipe action for a session.
func (r *SwipeRepository) RecordSwipe(sessionID string, tier string, action models.SwipeAction) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.Exec(`
		INSERT INTO swipe_actions (session_id, outfit_id, action, source_tier, swiped_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, action.OutfitID, action.Action, tier, time.UnixMilli(action.Timestamp).UTC())
	if err != nil {
		return fmt.Errorf("record swipe: %w", err)
	}
	return nil
}

// UpsertLikedSnapshot stores or refreshes a liked-outfit snapshot.
func (r *SwipeRepository) UpsertLikedSnapshot(sessionID string, rec models.OutfitRecommendation) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.Exec(`
		INSERT INTO liked_outfit_snapshots (session_id, outfit_id, style_description, confidence, liked_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_id, outfit_id)
		DO UPDATE SET style_description = EXCLUDED.style_description, confidence = EXCLUDED.confidence, liked_at = NOW()
	`, sessionID, rec.ID, rec.StyleDescription, rec.Confidence)
	if err != nil {
		return fmt.Errorf("upsert liked snapshot: %w", err)
	}
	return nil
}

// GetSwipes returns the stored swipe actions for a session, oldest first.
func (r *SwipeRepository) GetSwipes(sessionID string, limit int) ([]models.SwipeAction, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	rows, err := r.db.Query(`
		SELECT outfit_id, action, swiped_at
		FROM swipe_actions
		WHERE session_id = $1
		ORDER BY swiped_at ASC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query swipes: %w", err)
	}
	defer rows.Close()

	var actions []models.SwipeAction
	for rows.Next() {
		var a models.SwipeAction
		var swipedAt time.Time
		if err := rows.Scan(&a.OutfitID, &a.Action, &swipedAt); err != nil {
			return nil, fmt.Errorf("scan swipe: %w", err)
		}
		a.Timestamp = swipedAt.UnixMilli()
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ClearSession removes all persisted rows for a session.
func (r *SwipeRepository) ClearSession(sessionID string) error {
	if r == nil || r.db == nil {
		return nil
	}
	if _, err := r.db.Exec(`DELETE FROM swipe_actions WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear swipes: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM liked_outfit_snapshots WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear liked snapshots: %w", err)
	}
	return nil
}
