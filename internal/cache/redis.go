// Package cache is a Redis TTL cache in front of the live quote source.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"papertrade/internal/config"
	"papertrade/internal/models"
)

func NewRedisClient(cfg *config.Config, log *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Info("redis connected")
	return rdb, nil
}

type QuoteCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

func NewQuoteCache(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *QuoteCache {
	return &QuoteCache{redis: rdb, ttl: ttl, log: log}
}

func quoteKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}

func (c *QuoteCache) GetQuote(ctx context.Context, symbol string) (models.Quote, bool) {
	res, err := c.redis.Get(ctx, quoteKey(symbol)).Result()
	if err != nil {
		return models.Quote{}, false
	}
	var q models.Quote
	if err := json.Unmarshal([]byte(res), &q); err != nil {
		c.log.Warnf("unmarshal cached quote for %s failed: %v", symbol, err)
		return models.Quote{}, false
	}
	return q, true
}

func (c *QuoteCache) SetQuote(ctx context.Context, q models.Quote) {
	b, err := json.Marshal(q)
	if err != nil {
		c.log.Warnf("marshal quote for %s failed: %v", q.Symbol, err)
		return
	}
	if err := c.redis.Set(ctx, quoteKey(q.Symbol), b, c.ttl).Err(); err != nil {
		c.log.Warnf("cache quote for %s failed: %v", q.Symbol, err)
	}
}
