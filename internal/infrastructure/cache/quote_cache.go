package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/logistics-erp/hrm/internal/application/coverage"
)

const quoteKeyPrefix = "pricing:quote:"

// RedisQuoteCache stores computed shipping quotes in Redis. A cache miss
// is reported as (nil, nil) so callers fall through to computing.
type RedisQuoteCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisQuoteCache creates a quote cache on an existing Redis client
func NewRedisQuoteCache(client *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{
		client:    client,
		keyPrefix: quoteKeyPrefix,
	}
}

func (c *RedisQuoteCache) GetQuote(ctx context.Context, key string) (*coverage.QuoteResponse, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached quote: %w", err)
	}

	var quote coverage.QuoteResponse
	if err := json.Unmarshal(data, &quote); err != nil {
		// Treat a corrupt entry as a miss, it will be overwritten
		return nil, nil
	}
	return &quote, nil
}

func (c *RedisQuoteCache) SetQuote(ctx context.Context, key string, quote *coverage.QuoteResponse, ttl time.Duration) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}

// InMemoryQuoteCache is a process-local quote cache for development and
// tests. Expired entries are dropped lazily on read.
type InMemoryQuoteCache struct {
	mu      sync.RWMutex
	entries map[string]quoteEntry
}

type quoteEntry struct {
	quote     coverage.QuoteResponse
	expiresAt time.Time
}

// NewInMemoryQuoteCache creates an empty in-memory quote cache
func NewInMemoryQuoteCache() *InMemoryQuoteCache {
	return &InMemoryQuoteCache{entries: make(map[string]quoteEntry)}
}

func (c *InMemoryQuoteCache) GetQuote(_ context.Context, key string) (*coverage.QuoteResponse, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	quote := entry.quote
	return &quote, nil
}

func (c *InMemoryQuoteCache) SetQuote(_ context.Context, key string, quote *coverage.QuoteResponse, ttl time.Duration) error {
	if quote == nil {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = quoteEntry{quote: *quote, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
