// Package redis caches recommendation sets in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "plant-advisor:recs:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RecommendationCache stores recommendation sets keyed by request hash.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache connects to Redis. The connection is lazy; call
// Ping to verify it.
func NewRecommendationCache(opts Options) *RecommendationCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RecommendationCache{client: client, ttl: opts.TTL}
}

// Get returns the cached set for key. A miss is (zero, false, nil).
func (c *RecommendationCache) Get(ctx context.Context, key string) (domain.RecommendationSet, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RecommendationSet{}, false, nil
	}
	if err != nil {
		return domain.RecommendationSet{}, false, fmt.Errorf("redis get: %w", err)
	}

	var set domain.RecommendationSet
	if err := json.Unmarshal(data, &set); err != nil {
		return domain.RecommendationSet{}, false, fmt.Errorf("decode cached set: %w", err)
	}
	return set, true, nil
}

// Set stores set under key for the configured TTL.
func (c *RecommendationCache) Set(ctx context.Context, key string, set domain.RecommendationSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode set: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *RecommendationCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RecommendationCache) Close() error {
	return c.client.Close()
}
