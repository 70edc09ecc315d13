package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roots-catalog/internal/config"
	"roots-catalog/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisCache implements ProductCache on top of Redis.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewRedisCache creates a product cache backed by client.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) ProductCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "product-cache").Logger(),
	}
}

// productKey returns the Redis key for one product.
func productKey(id string) string {
	return "product:" + id
}

// Get returns the cached product, or nil on a miss or error.
func (c *redisCache) Get(ctx context.Context, id string) *model.Product {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("product_id", id).Msg("redis GET failed")
		}
		return nil
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn().Err(err).Str("product_id", id).Msg("failed to decode cached product")
		c.Invalidate(ctx, id)
		return nil
	}

	if p.ID != id {
		c.logger.Warn().
			Str("key_id", id).
			Str("product_id", p.ID).
			Msg("cached product ID mismatch")
		c.Invalidate(ctx, id)
		return nil
	}

	return &p
}

// Set stores product with the configured TTL.
func (c *redisCache) Set(ctx context.Context, p *model.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", p.ID).Msg("failed to encode product for cache")
		return
	}

	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", p.ID).Msg("redis SET failed")
	}
}

// Invalidate removes the cached product.
func (c *redisCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", id).Msg("redis DEL failed")
	}
}
