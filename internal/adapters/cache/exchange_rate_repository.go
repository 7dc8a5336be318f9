package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
)

// CachedExchangeRateRepository serves exact-date lookups from a RateCache and
// delegates everything else to the wrapped repository. Cache failures are
// logged and never surface to callers. Misses are not cached.
type CachedExchangeRateRepository struct {
	next  portsrepo.ExchangeRateRepositoryFacade
	cache RateCache
	ttl   time.Duration
}

// NewCachedExchangeRateRepository decorates next with cache.
func NewCachedExchangeRateRepository(next portsrepo.ExchangeRateRepositoryFacade, cache RateCache, ttl time.Duration) *CachedExchangeRateRepository {
	return &CachedExchangeRateRepository{next: next, cache: cache, ttl: ttl}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*CachedExchangeRateRepository)(nil)

func (r *CachedExchangeRateRepository) lookup(ctx context.Context, key string) *domain.ExchangeRate {
	logger := middleware.GetLoggerFromCtx(ctx)
	rate, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.Error("Error getting from rate cache", slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}
	if rate != nil {
		logger.Debug("Rate cache hit", slog.String("key", key))
	}
	return rate
}

func (r *CachedExchangeRateRepository) store(ctx context.Context, rate *domain.ExchangeRate) {
	key := RateKey(rate.FromCurrency, rate.ToCurrency, rate.Date)
	if err := r.cache.Set(ctx, key, rate, r.ttl); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Error setting rate cache",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (r *CachedExchangeRateRepository) FindRateOnDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	if rate := r.lookup(ctx, RateKey(fromCurrency, toCurrency, date)); rate != nil {
		return rate, nil
	}
	rate, err := r.next.FindRateOnDate(ctx, fromCurrency, toCurrency, date)
	if err != nil {
		return nil, err
	}
	r.store(ctx, rate)
	return rate, nil
}

func (r *CachedExchangeRateRepository) ExistsForDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (bool, error) {
	if rate := r.lookup(ctx, RateKey(fromCurrency, toCurrency, date)); rate != nil {
		return true, nil
	}
	return r.next.ExistsForDate(ctx, fromCurrency, toCurrency, date)
}

func (r *CachedExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	stored, err := r.next.UpsertRate(ctx, rate)
	if err != nil {
		return nil, err
	}
	r.store(ctx, stored)
	return stored, nil
}

func (r *CachedExchangeRateRepository) FindLatestRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	return r.next.FindLatestRateOnOrBefore(ctx, fromCurrency, toCurrency, date)
}

func (r *CachedExchangeRateRepository) ListRates(ctx context.Context, filter portsrepo.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	return r.next.ListRates(ctx, filter)
}
