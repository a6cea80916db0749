package service

import (
	"context"
	"time"

	"travel_booking/internal/cache"
	"travel_booking/internal/metrics"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	listingsCacheKey = "listings:all"
	packagesCacheKey = "packages:all"
)

// CatalogCache configures the cache-aside layer for the full listing and
// package lists. A nil Cache disables it.
type CatalogCache struct {
	Cache cache.Cache
	TTL   time.Duration
}

// cachedList serves key from the cache, falling back to load on a miss. Cache
// errors are logged and never fail the request.
func cachedList[T any](ctx context.Context, cc CatalogCache, key, collection string, load func(context.Context) ([]T, error)) ([]T, error) {
	if cc.Cache == nil {
		return load(ctx)
	}

	var items []T
	hit, err := cc.Cache.Get(ctx, key, &items)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}
	metrics.ObserveCacheLookup(collection, hit)
	if hit && items != nil {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cc.Cache.Set(ctx, key, items, cc.TTL); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return items, nil
}

func (cc CatalogCache) invalidate(ctx context.Context, key string) {
	if cc.Cache == nil {
		return
	}
	if err := cc.Cache.Delete(ctx, key); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("catalog cache invalidation failed")
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
