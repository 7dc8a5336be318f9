package pgsql

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories. rateWrap, when
// non-nil, decorates the exchange rate repository (the read-through cache).
func NewRepositoryProvider(db DBTX, rateWrap func(portsrepo.ExchangeRateRepositoryFacade) portsrepo.ExchangeRateRepositoryFacade) portsrepo.RepositoryProvider {
	var exchangeRateRepo portsrepo.ExchangeRateRepositoryFacade = NewPgxExchangeRateRepository(db)
	if rateWrap != nil {
		exchangeRateRepo = rateWrap(exchangeRateRepo)
	}

	return portsrepo.RepositoryProvider{
		ExchangeRateRepo:    exchangeRateRepo,
		FinancialRecordRepo: NewPgxFinancialRecordRepository(db),
	}
}
