package source

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

const batchKeyPrefix = "fittedai:feed_batch:"

// BatchCache is a Redis cache for first-page remote batches, keyed by feed
// session id. Cache failures are treated as misses; the feed is the source
// of truth.
type BatchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBatchCache creates a batch cache with the given TTL.
func NewBatchCache(rdb *redis.Client, ttl time.Duration) *BatchCache {
	return &BatchCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached batch for a session, if any.
func (c *BatchCache) Get(ctx context.Context, sessionID string) ([]models.OutfitRecommendation, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, batchKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("batch cache read failed", "session_id", sessionID, "error", err)
		return nil, false
	}

	var batch []models.OutfitRecommendation
	if err := json.Unmarshal(data, &batch); err != nil {
		slog.Warn("batch cache entry corrupt, ignoring", "session_id", sessionID, "error", err)
		return nil, false
	}
	return batch, len(batch) > 0
}

// Set stores a batch for a session.
func (c *BatchCache) Set(ctx context.Context, sessionID string, batch []models.OutfitRecommendation) {
	if c == nil || c.rdb == nil || len(batch) == 0 {
		return
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, batchKeyPrefix+sessionID, data, c.ttl).Err(); err != nil {
		slog.Warn("batch cache write failed", "session_id", sessionID, "error", err)
	}
}
