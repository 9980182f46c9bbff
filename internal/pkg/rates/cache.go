package rates

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "rates:brl:"

// Cached wraps a source provider with a Redis TTL cache. Rates refresh
// lazily: a cache miss (or expired key) falls through to the source and the
// fetched rate is written back with the configured TTL.
type Cached struct {
	client *redis.Client
	source Provider
	ttl    time.Duration
}

func NewCached(addr, password string, db int, source Provider, ttl time.Duration) (*Cached, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cached{client: client, source: source, ttl: ttl}, nil
}

func (c *Cached) RateBRL(ctx context.Context, currency string) (float64, error) {
	key := rateKeyPrefix + strings.ToUpper(currency)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		rate, parseErr := strconv.ParseFloat(cached, 64)
		if parseErr == nil && rate > 0 {
			return rate, nil
		}
		slog.Warn("Dropping unparseable cached rate", "currency", currency, "value", cached)
	} else if err != redis.Nil {
		// Redis being down must not take the rate lookup with it.
		slog.Warn("Redis rate lookup failed, falling through to source", "currency", currency, "error", err)
	}

	rate, err := c.source.RateBRL(ctx, currency)
	if err != nil {
		return 0, err
	}

	if setErr := c.client.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), c.ttl).Err(); setErr != nil {
		slog.Warn("Failed to cache rate", "currency", currency, "error", setErr)
	}
	return rate, nil
}

// Warm pre-populates the cache from the source for the given currencies.
func (c *Cached) Warm(ctx context.Context, currencies []string) error {
	for _, currency := range currencies {
		if _, err := c.RateBRL(ctx, currency); err != nil {
			return fmt.Errorf("failed to warm rate for %s: %w", currency, err)
		}
	}
	return nil
}

func (c *Cached) Close() error {
	return c.client.Close()
}
