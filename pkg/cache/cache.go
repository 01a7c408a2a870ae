// Package cache is the read-through cache in front of public catalog lists.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores JSON values by key. Misses and backend errors both read as a
// miss so a cache outage never fails a request.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any)
	Delete(ctx context.Context, keys ...string)
	DeletePrefix(ctx context.Context, prefix string)
	Close() error
}

// Keys of cached catalog lists.
const (
	KeyCategories       = "catalog:categories"
	KeyBanners          = "catalog:banners"
	KeyPromos           = "catalog:promos"
	KeyPaymentMethods   = "catalog:payment-methods"
	KeyActivitiesPrefix = "catalog:activities:"
)

// ActivitiesKey identifies one page of the activity listing.
func ActivitiesKey(categoryID, search string, page, perPage int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", KeyActivitiesPrefix, categoryID, search, page, perPage)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis when an address is configured and falls back to a
// no-op cache otherwise.
func New(ctx context.Context, cfg utils.RedisConfig, log *zap.Logger) (Cache, error) {
	log = log.With(zap.String("component", "cache"))
	if cfg.Addr == "" {
		log.Info("Redis not configured, catalog cache disabled")
		return Noop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log.Info("Redis connected", zap.String("addr", cfg.Addr))
	return &redisCache{client: client, ttl: cfg.TTL(), log: log}, nil
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Cache entry corrupt", zap.String("key", key), zap.Error(err))
		c.Delete(ctx, key)
		return false
	}

	return true
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}

	c.Delete(ctx, keys...)
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) bool { return false }
func (Noop) SetJSON(context.Context, string, any)      {}
func (Noop) Delete(context.Context, ...string)         {}
func (Noop) DeletePrefix(context.Context, string)      {}
func (Noop) Close() error                              { return nil }
