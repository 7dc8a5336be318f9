package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the row shape of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	RateDate       time.Time       `db:"rate_date"`
	FromCurrency   string          `db:"from_currency"`
	ToCurrency     string          `db:"to_currency"`
	Rate           decimal.Decimal `db:"rate"` // numeric(18,6)
	AuditFields
}
