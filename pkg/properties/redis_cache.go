package properties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/homespark/campaigner/pkg/models"
)

const cacheKeyPrefix = "campaigner:property:"

// CachedSource decorates a Source with a Redis read-through cache. Cache
// failures degrade to the underlying source; they never fail a lookup.
type CachedSource struct {
	source Source
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSource(source Source, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "property_cache"),
	}
}

// NewRedisClient builds a Redis client from a redis:// URL.
func NewRedisClient(redisURL string) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return redis.NewClient(opts), nil
}

func (c *CachedSource) Property(ctx context.Context, id string) (*models.Property, error) {
	key := cacheKeyPrefix + id

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var property models.Property
		if unmarshalErr := json.Unmarshal(payload, &property); unmarshalErr == nil {
			return &property, nil
		}

		c.logger.WarnContext(ctx, "Discarding undecodable cache entry", "property_id", id)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "Property cache read failed", "property_id", id, "error", err)
	}

	property, err := c.source.Property(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(property)
	if err != nil {
		return property, nil
	}

	if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
		c.logger.WarnContext(ctx, "Property cache write failed", "property_id", id, "error", setErr)
	}

	return property, nil
}

// Invalidate drops a property's cache entry, typically after the listing
// source reports an update.
func (c *CachedSource) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, cacheKeyPrefix+id).Err()
}
