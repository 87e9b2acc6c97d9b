// Package cache provides a Redis-backed cache for ranked preview lists.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tokenradar/internal/domain"
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

const (
	tokenRankingKey  = "tokenradar:ranking:tokens"
	walletRankingKey = "tokenradar:ranking:wallets"

	defaultTTL = 5 * time.Minute
)

// RankingCache stores ranked token and wallet previews in Redis. Rankings
// are whole-list values; a stale list is replaced wholesale on the next tick.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a RankingCache.
type Option func(*RankingCache)

// WithTTL overrides the default ranking TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *RankingCache) {
		c.ttl = ttl
	}
}

// NewRankingCache connects to Redis and verifies the connection.
func NewRankingCache(ctx context.Context, addr, password string, db int, opts ...Option) (*RankingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	c := &RankingCache{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close closes the Redis connection.
func (c *RankingCache) Close() error {
	return c.client.Close()
}

// SetTokenRanking replaces the cached token ranking.
func (c *RankingCache) SetTokenRanking(ctx context.Context, previews []domain.TokenPreview) error {
	return c.set(ctx, tokenRankingKey, previews)
}

// TokenRanking retrieves the cached token ranking. Returns ErrCacheMiss when
// no ranking has been cached or it expired.
func (c *RankingCache) TokenRanking(ctx context.Context) ([]domain.TokenPreview, error) {
	var previews []domain.TokenPreview
	if err := c.get(ctx, tokenRankingKey, &previews); err != nil {
		return nil, err
	}
	return previews, nil
}

// SetWalletRanking replaces the cached wallet ranking.
func (c *RankingCache) SetWalletRanking(ctx context.Context, previews []domain.WalletPreview) error {
	return c.set(ctx, walletRankingKey, previews)
}

// WalletRanking retrieves the cached wallet ranking. Returns ErrCacheMiss
// when no ranking has been cached or it expired.
func (c *RankingCache) WalletRanking(ctx context.Context) ([]domain.WalletPreview, error) {
	var previews []domain.WalletPreview
	if err := c.get(ctx, walletRankingKey, &previews); err != nil {
		return nil, err
	}
	return previews, nil
}

func (c *RankingCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cached value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}
	return nil
}

func (c *RankingCache) get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("get cache key %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("unmarshal cached value: %w", err)
	}
	return nil
}
