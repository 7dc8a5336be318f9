package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for storing a rate by hand.
type CreateExchangeRateRequest struct {
	Currency string          `json:"currency" binding:"required,currency"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
}

// GetExchangeRateParams are the query parameters of a rate lookup.
type GetExchangeRateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListExchangeRatesParams are the query parameters for listing persisted rates.
type ListExchangeRatesParams struct {
	Currency  string  `form:"currency" binding:"omitempty,currency"`
	DateFrom  string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Date           string          `json:"date"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ResolvedRateResponse is returned by the resolving lookup, which may answer
// with a rate from an earlier business day.
type ResolvedRateResponse struct {
	Currency      string          `json:"currency"`
	ToCurrency    string          `json:"toCurrency"`
	RequestedDate string          `json:"requestedDate"`
	Rate          decimal.Decimal `json:"rate"`
}

// ListExchangeRatesResponse is one page of persisted rates.
type ListExchangeRatesResponse struct {
	Rates     []ExchangeRateResponse `json:"rates"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		Date:           domain.FormatDate(rate.Date),
		FromCurrency:   rate.FromCurrency,
		ToCurrency:     rate.ToCurrency,
		Rate:           rate.Rate,
		CreatedAt:      rate.CreatedAt,
		LastUpdatedAt:  rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
