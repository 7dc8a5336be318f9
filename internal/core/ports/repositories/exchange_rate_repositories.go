package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ExchangeRateFilter narrows a listing of persisted rates.
// Results are ordered newest date first; After continues a previous page.
type ExchangeRateFilter struct {
	FromCurrency string
	ToCurrency   string
	DateFrom     *time.Time
	DateTo       *time.Time
	After        *ExchangeRateCursor
	Limit        int
}

// ExchangeRateCursor is the keyset position of the last row of a page.
type ExchangeRateCursor struct {
	Date           time.Time
	ExchangeRateID string
}

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnDate returns the rate persisted for exactly this date, or apperrors.ErrNotFound.
	FindRateOnDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error)

	// FindLatestRateOnOrBefore returns the most recent rate dated on or before date.
	FindLatestRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error)

	// ExistsForDate reports whether a rate is persisted for exactly this date.
	ExistsForDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (bool, error)

	// ListRates returns a page of persisted rates.
	ListRates(ctx context.Context, filter ExchangeRateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertRate inserts the rate or, when (date, from, to) already exists,
	// overwrites its value. The stored row is returned.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
