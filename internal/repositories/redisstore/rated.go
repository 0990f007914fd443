package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RatedMarksRepository records the ratings a device has already submitted
// in a Redis hash of listing ID to stars.
type RatedMarksRepository struct {
	client *redis.Client
	key    string
}

func NewRatedMarksRepository(client *redis.Client, deviceID string) *RatedMarksRepository {
	return &RatedMarksRepository{
		client: client,
		key:    fmt.Sprintf("messle:%s:rated", deviceID),
	}
}

func (r *RatedMarksRepository) HasRated(ctx context.Context, listingID string) (bool, error) {
	ok, err := r.client.HExists(ctx, r.key, listingID).Result()
	if err != nil {
		return false, fmt.Errorf("rated check: %w", err)
	}
	return ok, nil
}

// Rating returns the stars this device gave a listing, 0 if never rated.
func (r *RatedMarksRepository) Rating(ctx context.Context, listingID string) (int, error) {
	raw, err := r.client.HGet(ctx, r.key, listingID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("rated read: %w", err)
	}
	stars, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rated decode: %w", err)
	}
	return stars, nil
}

func (r *RatedMarksRepository) Mark(ctx context.Context, listingID string, stars int) error {
	if err := r.client.HSet(ctx, r.key, listingID, stars).Err(); err != nil {
		return fmt.Errorf("rated mark: %w", err)
	}
	return nil
}
