package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultHistoryLimit is the maximum number of history entries kept
// after any mutation.
const DefaultHistoryLimit = 10

// HistoryStore persists the bounded, recency-ordered search history.
// Entries are unique by raw query text (case-sensitive); saving an
// existing query refreshes its timestamp instead of duplicating it.
// Redis serializes the writes, so a fetch right after a save observes it.
type HistoryStore struct {
	client *redis.Client
	limit  int64
}

// NewHistoryStore creates a history store. limit <= 0 falls back to
// DefaultHistoryLimit.
func NewHistoryStore(client *redis.Client, limit int) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{
		client: client,
		limit:  int64(limit),
	}
}

// Save upserts a query with the current timestamp, then evicts the
// least-recently-used entries past the limit.
func (s *HistoryStore) Save(ctx context.Context, query string) error {
	now := float64(time.Now().UnixNano())

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, KeyHistory, redis.Z{Score: now, Member: query})
	// Keep only the `limit` highest-scored (most recent) members.
	pipe.ZRemRangeByRank(ctx, KeyHistory, 0, -(s.limit + 1))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// Fetch returns the saved queries, most-recently-used first, capped at
// the store limit.
func (s *HistoryStore) Fetch(ctx context.Context) ([]string, error) {
	queries, err := s.client.ZRevRange(ctx, KeyHistory, 0, s.limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return queries, nil
}

// Clear removes all history entries.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyHistory).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
