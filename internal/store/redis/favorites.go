package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jloaiza/melisearch/internal/domain"
)

// FavoritesStore persists favorite product snapshots, unique by product
// ID. Snapshots live indefinitely until removed (no TTL).
type FavoritesStore struct {
	client *redis.Client
}

// NewFavoritesStore creates a favorites store.
func NewFavoritesStore(client *redis.Client) *FavoritesStore {
	return &FavoritesStore{
		client: client,
	}
}

// Add upserts a favorite snapshot. Re-adding an already-favorited ID
// overwrites the existing snapshot.
func (s *FavoritesStore) Add(ctx context.Context, entry domain.FavoriteEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, FavoriteKey(entry.ID), data, 0)
	pipe.SAdd(ctx, KeyAllFavorites, entry.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite by product ID. Removing an absent ID is a
// no-op.
func (s *FavoritesStore) Remove(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, FavoriteKey(id))
	pipe.SRem(ctx, KeyAllFavorites, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Contains reports whether a product ID is favorited.
func (s *FavoritesStore) Contains(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, KeyAllFavorites, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return ok, nil
}

// ContainsMany checks a batch of product IDs in one round trip.
// Used to annotate a whole result page.
func (s *FavoritesStore) ContainsMany(ctx context.Context, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	flags, err := s.client.SMIsMember(ctx, KeyAllFavorites, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check favorites: %w", err)
	}

	result := make(map[string]bool, len(ids))
	for i, id := range ids {
		result[id] = flags[i]
	}
	return result, nil
}

// All returns every favorite snapshot. Entries that cannot be read or
// decoded are skipped.
func (s *FavoritesStore) All(ctx context.Context) ([]domain.FavoriteEntry, error) {
	ids, err := s.client.SMembers(ctx, KeyAllFavorites).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite IDs: %w", err)
	}

	entries := make([]domain.FavoriteEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.get(ctx, id)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *FavoritesStore) get(ctx context.Context, id string) (domain.FavoriteEntry, error) {
	data, err := s.client.Get(ctx, FavoriteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.FavoriteEntry{}, fmt.Errorf("favorite not found: %s", id)
		}
		return domain.FavoriteEntry{}, fmt.Errorf("failed to get favorite: %w", err)
	}

	var entry domain.FavoriteEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.FavoriteEntry{}, fmt.Errorf("failed to unmarshal favorite: %w", err)
	}
	return entry, nil
}
