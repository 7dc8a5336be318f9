// Package cache keeps recently resolved exchange rates in front of the
// exchange_rates table, either in process memory or in Redis.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// RateCache stores exchange rates by key. A miss is (nil, nil).
type RateCache interface {
	Get(ctx context.Context, key string) (*domain.ExchangeRate, error)
	Set(ctx context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error
	Close() error
}

// RateKey builds the cache key of a rate for one calendar day.
func RateKey(fromCurrency, toCurrency string, date time.Time) string {
	return fmt.Sprintf("exchange_rate:%s-%s:%s",
		strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), domain.FormatDate(date))
}

// Open returns the RateCache for driver ("memory", "redis" or "none").
// "none" yields a nil cache.
func Open(ctx context.Context, driver, redisURL string) (RateCache, error) {
	switch strings.ToLower(driver) {
	case "", "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(ctx, redisURL)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown rate cache driver %q", driver)
	}
}
