package providers

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider fetches published reference rates from an upstream source.
// Rates are units of currency per 1 unit of the provider's target currency.
// Implementations never persist anything.
type RateProvider interface {
	// FetchRate returns the rate published for exactly date.
	FetchRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, error)

	// FetchRange returns every rate published in [start, end], keyed by normalized date.
	FetchRange(ctx context.Context, currency string, start, end time.Time) (map[time.Time]decimal.Decimal, error)
}

// ErrRateUnavailable is returned by a RateProvider when the upstream answered
// but published no usable rate (market closed, empty or malformed response).
var ErrRateUnavailable = errors.New("no rate published for the requested period")
