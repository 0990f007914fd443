package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/om-bhaiya/messle/internal/directory"
	"github.com/om-bhaiya/messle/internal/location"
	"github.com/om-bhaiya/messle/internal/logger"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/om-bhaiya/messle/internal/ranking"
	"github.com/om-bhaiya/messle/internal/repositories"
	"github.com/om-bhaiya/messle/internal/repositories/local"
	"github.com/om-bhaiya/messle/internal/repositories/postgres"
	"github.com/om-bhaiya/messle/internal/repositories/redisstore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds the wired directory service plus everything that needs
// closing when a command finishes.
type app struct {
	cfg      *models.Config
	log      *zap.Logger
	service  *directory.Service
	listings repositories.ListingRepository
	pool     *pgxpool.Pool
	rdb      *redis.Client
}

func (a *app) Close() {
	if a.service != nil {
		if err := a.service.Close(); err != nil {
			a.log.Warn("failed to close output", zap.Error(err))
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.log.Sync()
}

// buildApp wires repositories, location and the event sink from config.
// provider may be nil when the command has no caller location.
func buildApp(ctx context.Context, cfg *models.Config, provider location.Provider) (*app, error) {
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres_dsn is required")
	}
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	listings := postgres.NewListingRepository(pool)
	ratings := postgres.NewRatingRepository(pool)

	var (
		rdb   *redis.Client
		favs  repositories.FavoritesRepository
		rated repositories.RatedMarksRepository
		cache location.SessionCache
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		favs = redisstore.NewFavoritesRepository(rdb, cfg.DeviceID)
		rated = redisstore.NewRatedMarksRepository(rdb, cfg.DeviceID)
		cache = location.NewRedisCache(rdb, cfg.DeviceID, cfg.LocationMaxAge)
	} else {
		store, err := local.NewStore(cfg.LocalStatePath)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to open local state: %w", err)
		}
		favs = store.Favorites()
		rated = store.RatedMarks()
		cache = location.NewMemoryCache(cfg.LocationMaxAge)
	}

	resolver := location.NewResolver(provider, cache, cfg.LocationTimeout, log)
	pipeline := ranking.NewPipeline(
		ranking.NewScorer(cfg.Weights, cfg.AvgMonthlyPrice),
		cfg.DistanceDominanceKm,
	)

	output, err := directory.NewOutputDestination(cfg, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create output destination: %w", err)
	}

	service := directory.NewService(cfg, log, listings, favs, rated, ratings, resolver, pipeline, output)
	return &app{cfg: cfg, log: log, service: service, listings: listings, pool: pool, rdb: rdb}, nil
}
