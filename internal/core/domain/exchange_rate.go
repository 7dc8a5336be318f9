package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a cached daily reference rate.
// Rate is expressed as units of FromCurrency per 1 unit of ToCurrency, so an
// amount in FromCurrency divided by Rate yields the ToCurrency amount.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Date           time.Time       `json:"date"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	AuditFields
}

// RateScale is the number of fractional digits persisted for a rate.
const RateScale = 6
