// Package bootstrap opens the backing services named by the configuration.
// Both the API server and travelctl boot through it.
package bootstrap

import (
	"context"
	"fmt"

	"travel_booking/internal/cache"
	"travel_booking/internal/config"
	"travel_booking/internal/repository"
	"travel_booking/internal/service"

	"github.com/rs/zerolog"
)

const cacheKeyPrefix = "travel:"

// OpenStore connects to the configured backend, applies its schema or indexes
// and returns the store with a function that releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, func(), error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := config.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}
		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			closeFn()
			return nil, nil, err
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Using MongoDB store")
		return repository.NewMongoStore(db), closeFn, nil

	case config.DriverPostgres:
		pool, err := config.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := config.AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info().Msg("Using PostgreSQL store")
		return repository.NewPostgresStore(pool), pool.Close, nil

	case config.DriverMemory:
		logger.Warn().Msg("Using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenCatalogCache returns the cache for catalog lists: Redis when REDIS_URL is
// set, a process-local cache otherwise. A non-positive TTL disables caching.
func OpenCatalogCache(ctx context.Context, cfg *config.Config) (service.CatalogCache, func(), error) {
	logger := zerolog.Ctx(ctx)

	if cfg.CacheTTL <= 0 {
		logger.Info().Msg("Catalog cache disabled")
		return service.CatalogCache{}, func() {}, nil
	}

	if cfg.RedisURL == "" {
		logger.Info().Dur("ttl", cfg.CacheTTL).Msg("Using in-process catalog cache")
		return service.CatalogCache{Cache: cache.NewMemory(), TTL: cfg.CacheTTL}, func() {}, nil
	}

	rc, err := cache.NewRedis(ctx, cfg.RedisURL, cacheKeyPrefix)
	if err != nil {
		return service.CatalogCache{}, nil, err
	}
	logger.Info().Dur("ttl", cfg.CacheTTL).Msg("Using Redis catalog cache")
	closeFn := func() {
		if err := rc.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
	return service.CatalogCache{Cache: rc, TTL: cfg.CacheTTL}, closeFn, nil
}
