// Package photostore persists a visitor's reference photo URI across app
// restarts and screen transitions. Last-write-wins, no transactional
// guarantee.
package photostore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fittedai:reference_photo:"

// Store is the Redis-backed reference photo store.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a photo store over an existing Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(visitorID string) string {
	return keyPrefix + visitorID
}

// Save persists the reference photo URI for a visitor. Errors propagate so
// the caller can surface a user-visible alert; state is left unchanged on
// failure.
func (s *Store) Save(ctx context.Context, visitorID, uri string) error {
	if uri == "" {
		return fmt.Errorf("empty photo URI")
	}
	if err := s.rdb.Set(ctx, key(visitorID), uri, 0).Err(); err != nil {
		return fmt.Errorf("save reference photo: %w", err)
	}
	slog.Debug("saved reference photo", "visitor_id", visitorID)
	return nil
}

// Get returns the saved reference photo URI, or "" when none is stored.
func (s *Store) Get(ctx context.Context, visitorID string) (string, error) {
	uri, err := s.rdb.Get(ctx, key(visitorID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get reference photo: %w", err)
	}
	return uri, nil
}

// Clear removes the saved reference photo.
func (s *Store) Clear(ctx context.Context, visitorID string) error {
	if err := s.rdb.Del(ctx, key(visitorID)).Err(); err != nil {
		return fmt.Errorf("clear reference photo: %w", err)
	}
	return nil
}

// Exists reports whether a reference photo is stored for the visitor.
func (s *Store) Exists(ctx context.Context, visitorID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(visitorID)).Result()
	if err != nil {
		return false, fmt.Errorf("check reference photo: %w", err)
	}
	return n > 0, nil
}
