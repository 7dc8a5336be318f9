package services

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider providers.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver comes first since records and backfill convert through it
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		rateProvider,
		WithTargetCurrency(cfg.ECBTargetCurrency),
		WithFallbackWindow(cfg.ECBFallbackWindowDays),
	)

	container.Records = NewFinancialRecordService(repos.FinancialRecordRepo, container.ExchangeRate, cfg.ECBTargetCurrency)
	container.Backfill = NewBackfillService(repos.FinancialRecordRepo, container.ExchangeRate, cfg.ECBTargetCurrency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ExchangeRateSvcFacade    = (*exchangeRateService)(nil)
	_ portssvc.FinancialRecordSvcFacade = (*financialRecordService)(nil)
	_ portssvc.BackfillSvc              = (*backfillService)(nil)
)
