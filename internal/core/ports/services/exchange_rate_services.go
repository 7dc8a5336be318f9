package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateResolverSvc resolves rates through the cache, exact-date fetch
// and trailing-window fetch tiers. A false ok means no rate could be found;
// errors are reserved for unexpected persistence failures.
type ExchangeRateResolverSvc interface {
	// GetRate returns units of currency per 1 EUR on date.
	GetRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool, error)

	// ConvertToEUR converts amountMinor in currency into EUR minor units.
	ConvertToEUR(ctx context.Context, amountMinor int64, currency string, date time.Time) (int64, bool, error)

	// HasRateFor checks the persisted cache only; it never fetches.
	HasRateFor(ctx context.Context, currency string, date time.Time) (bool, error)
}

// ExchangeRateReaderSvc defines read operations over persisted rates
type ExchangeRateReaderSvc interface {
	// LatestRateOnOrBefore returns the newest persisted rate dated on or before date.
	LatestRateOnOrBefore(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists persisted rates page by page.
	ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error)
}

// ExchangeRateWriterSvc defines operations that write rates.
// The FetchAndCache* operations hit the upstream provider and persist every
// valid rate they learn before returning.
type ExchangeRateWriterSvc interface {
	// StoreRate upserts a rate for (currency, date).
	StoreRate(ctx context.Context, currency string, date time.Time, rate decimal.Decimal) (*domain.ExchangeRate, error)

	// FetchAndCacheRate fetches and stores the rate published for exactly date.
	FetchAndCacheRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool, error)

	// FetchAndCacheRange fetches and stores every rate published in [start, end].
	FetchAndCacheRange(ctx context.Context, currency string, start, end time.Time) (map[time.Time]decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateResolverSvc
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
