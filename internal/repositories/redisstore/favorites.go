package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// FavoritesRepository keeps the device's favorite listing IDs in a Redis
// set, one key per device.
type FavoritesRepository struct {
	client *redis.Client
	key    string
}

func NewFavoritesRepository(client *redis.Client, deviceID string) *FavoritesRepository {
	return &FavoritesRepository{
		client: client,
		key:    fmt.Sprintf("messle:%s:favorites", deviceID),
	}
}

func (r *FavoritesRepository) GetAll(ctx context.Context) (map[string]struct{}, error) {
	ids, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("favorites read: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// Toggle flips the favorite mark and returns the new state.
func (r *FavoritesRepository) Toggle(ctx context.Context, listingID string) (bool, error) {
	member, err := r.client.SIsMember(ctx, r.key, listingID).Result()
	if err != nil {
		return false, fmt.Errorf("favorites check: %w", err)
	}
	if member {
		if err := r.client.SRem(ctx, r.key, listingID).Err(); err != nil {
			return false, fmt.Errorf("favorites remove: %w", err)
		}
		return false, nil
	}
	if err := r.client.SAdd(ctx, r.key, listingID).Err(); err != nil {
		return false, fmt.Errorf("favorites add: %w", err)
	}
	return true, nil
}

func (r *FavoritesRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("favorites count: %w", err)
	}
	return int(n), nil
}
