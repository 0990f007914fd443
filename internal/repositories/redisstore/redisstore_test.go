package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestFavoritesRepository(t *testing.T) {
	repo := NewFavoritesRepository(testClient(t), "dev-1")
	ctx := context.Background()

	t.Run("empty store reads as empty set", func(t *testing.T) {
		set, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("toggle on", func(t *testing.T) {
		on, err := repo.Toggle(ctx, "mess-1")
		require.NoError(t, err)
		assert.True(t, on)

		set, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Contains(t, set, "mess-1")
	})

	t.Run("toggle off", func(t *testing.T) {
		on, err := repo.Toggle(ctx, "mess-1")
		require.NoError(t, err)
		assert.False(t, on)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("count", func(t *testing.T) {
		_, err := repo.Toggle(ctx, "mess-1")
		require.NoError(t, err)
		_, err = repo.Toggle(ctx, "mess-2")
		require.NoError(t, err)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestFavoritesRepository_DeviceScoped(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	dev1 := NewFavoritesRepository(client, "dev-1")
	dev2 := NewFavoritesRepository(client, "dev-2")

	_, err := dev1.Toggle(ctx, "mess-1")
	require.NoError(t, err)

	set, err := dev2.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, set, "favorites must not leak across devices")
}

func TestRatedMarksRepository(t *testing.T) {
	repo := NewRatedMarksRepository(testClient(t), "dev-1")
	ctx := context.Background()

	t.Run("unrated", func(t *testing.T) {
		ok, err := repo.HasRated(ctx, "mess-1")
		require.NoError(t, err)
		assert.False(t, ok)

		stars, err := repo.Rating(ctx, "mess-1")
		require.NoError(t, err)
		assert.Zero(t, stars)
	})

	t.Run("mark and read back", func(t *testing.T) {
		require.NoError(t, repo.Mark(ctx, "mess-1", 4))

		ok, err := repo.HasRated(ctx, "mess-1")
		require.NoError(t, err)
		assert.True(t, ok)

		stars, err := repo.Rating(ctx, "mess-1")
		require.NoError(t, err)
		assert.Equal(t, 4, stars)
	})
}
