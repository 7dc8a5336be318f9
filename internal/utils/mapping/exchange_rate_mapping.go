package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		RateDate:       domain.NormalizeDate(d.Date),
		FromCurrency:   d.FromCurrency,
		ToCurrency:     d.ToCurrency,
		Rate:           d.Rate.Round(domain.RateScale),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		Date:           domain.NormalizeDate(m.RateDate),
		FromCurrency:   m.FromCurrency,
		ToCurrency:     m.ToCurrency,
		Rate:           m.Rate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
