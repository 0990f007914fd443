package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kota = models.Location{Lat: 25.2138, Lon: 75.8648}

func TestResolver_LiveReadingCached(t *testing.T) {
	cache := NewMemoryCache(DefaultMaxAge)
	r := NewResolver(Static{Loc: kota}, cache, time.Second, nil)

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kota, *got)

	cached, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, kota, *cached)
}

func TestResolver_FallsBackToCache(t *testing.T) {
	cache := NewMemoryCache(DefaultMaxAge)
	require.NoError(t, cache.Put(context.Background(), kota))

	failing := ProviderFunc(func(context.Context) (models.Location, error) {
		return models.Location{}, errors.New("permission denied")
	})
	r := NewResolver(failing, cache, time.Second, nil)

	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kota, *got)
}

func TestResolver_UnavailableWithoutCache(t *testing.T) {
	failing := ProviderFunc(func(context.Context) (models.Location, error) {
		return models.Location{}, errors.New("unsupported")
	})
	r := NewResolver(failing, NewMemoryCache(DefaultMaxAge), time.Second, nil)

	got, err := r.Resolve(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolver_NilProvider(t *testing.T) {
	r := NewResolver(nil, nil, time.Second, nil)
	got, err := r.Resolve(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolver_TimeoutOnHangingProvider(t *testing.T) {
	hanging := ProviderFunc(func(ctx context.Context) (models.Location, error) {
		<-ctx.Done() // never resolves on its own
		return models.Location{}, ctx.Err()
	})
	cache := NewMemoryCache(DefaultMaxAge)
	require.NoError(t, cache.Put(context.Background(), kota))
	r := NewResolver(hanging, cache, 20*time.Millisecond, nil)

	start := time.Now()
	got, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kota, *got)
	assert.Less(t, time.Since(start), time.Second, "must not wait past the budget")
}

func TestResolver_ProviderIgnoringContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	hanging := ProviderFunc(func(context.Context) (models.Location, error) {
		<-block // ignores cancellation entirely
		return models.Location{}, nil
	})
	r := NewResolver(hanging, nil, 20*time.Millisecond, nil)

	got, err := r.Resolve(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Put(context.Background(), kota))

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got, "stale reading must not be served")
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	require.NoError(t, cache.Put(context.Background(), kota))
	require.NoError(t, cache.Clear(context.Background()))
	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, "dev-1", time.Minute)
	ctx := context.Background()

	t.Run("miss on empty", func(t *testing.T) {
		got, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, kota))
		got, err := cache.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, kota, *got)
	})

	t.Run("expires with ttl", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, kota))
		mr.FastForward(2 * time.Minute)
		got, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, kota))
		require.NoError(t, cache.Clear(ctx))
		got, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
