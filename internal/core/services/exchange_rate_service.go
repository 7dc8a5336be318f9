package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultFallbackWindowDays is how many calendar days before the requested
	// date the range fetch looks back.
	DefaultFallbackWindowDays = 7

	defaultListLimit = 50
)

// exchangeRateService resolves, converts and caches reference rates.
type exchangeRateService struct {
	BaseService
	rateRepo       portsrepo.ExchangeRateRepositoryFacade
	provider       providers.RateProvider
	targetCurrency string
	fallbackDays   int
	now            func() time.Time
}

// ExchangeRateServiceOption configures an exchangeRateService.
type ExchangeRateServiceOption func(*exchangeRateService)

// WithTargetCurrency sets the currency rates are quoted against.
func WithTargetCurrency(code string) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if code = domain.NormalizeCurrencyCode(code); code != "" {
			s.targetCurrency = code
		}
	}
}

// WithFallbackWindow sets the trailing window, in calendar days, of the range fetch.
func WithFallbackWindow(days int) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if days > 0 {
			s.fallbackDays = days
		}
	}
}

// WithClock overrides the clock used to reject future dates.
func WithClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewExchangeRateService creates the rate resolver.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	provider providers.RateProvider,
	opts ...ExchangeRateServiceOption,
) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		rateRepo:       rateRepo,
		provider:       provider,
		targetCurrency: domain.DefaultTargetCurrency,
		fallbackDays:   DefaultFallbackWindowDays,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertToEUR divides amountMinor by the resolved rate and rounds half away from zero.
func (s *exchangeRateService) ConvertToEUR(ctx context.Context, amountMinor int64, currency string, date time.Time) (int64, bool, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	if currency == s.targetCurrency {
		return amountMinor, true, nil
	}

	rate, ok, err := s.GetRate(ctx, currency, date)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}

	converted := decimal.NewFromInt(amountMinor).DivRound(rate, 0)
	return converted.IntPart(), true, nil
}

// GetRate resolves the rate for (currency, date): persisted cache first, then
// the exact date upstream, then the newest rate published in the trailing window.
func (s *exchangeRateService) GetRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	date = domain.NormalizeDate(date)
	if currency == s.targetCurrency {
		return decimal.NewFromInt(1), true, nil
	}
	logAttrs := []any{slog.String("currency", currency), slog.String("date", domain.FormatDate(date))}
	if !domain.IsCurrencyCode(currency) {
		s.LogWarn(ctx, nil, "Refusing to resolve rate for malformed currency code", logAttrs...)
		return decimal.Zero, false, nil
	}

	cached, err := s.rateRepo.FindRateOnDate(ctx, currency, s.targetCurrency, date)
	if err == nil {
		s.LogDebug(ctx, "Exchange rate served from cache", logAttrs...)
		return cached.Rate, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up cached exchange rate: %w", err)
	}

	rate, ok, err := s.FetchAndCacheRate(ctx, currency, date)
	if err != nil {
		return decimal.Zero, false, err
	}
	if ok {
		return rate, true, nil
	}

	start := date.AddDate(0, 0, -s.fallbackDays)
	rates, err := s.FetchAndCacheRange(ctx, currency, start, date)
	if err != nil {
		return decimal.Zero, false, err
	}

	rateDate, rate, found := latestOnOrBefore(rates, date)
	if !found {
		s.LogWarn(ctx, nil, "No exchange rate published within fallback window",
			append(logAttrs, slog.Int("window_days", s.fallbackDays))...)
		return decimal.Zero, false, nil
	}

	s.LogInfo(ctx, "Exchange rate resolved from earlier business day",
		append(logAttrs, slog.String("rate_date", domain.FormatDate(rateDate)))...)
	return rate, true, nil
}

// latestOnOrBefore picks the chronologically latest entry not after date.
func latestOnOrBefore(rates map[time.Time]decimal.Decimal, date time.Time) (time.Time, decimal.Decimal, bool) {
	var (
		bestDate time.Time
		bestRate decimal.Decimal
		found    bool
	)
	for d, r := range rates {
		if d.After(date) {
			continue
		}
		if !found || d.After(bestDate) {
			bestDate, bestRate, found = d, r, true
		}
	}
	return bestDate, bestRate, found
}

// FetchAndCacheRate asks the provider for exactly date and stores a valid answer.
// Dates after today are refused without a request.
func (s *exchangeRateService) FetchAndCacheRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	date = domain.NormalizeDate(date)
	logAttrs := []any{slog.String("currency", currency), slog.String("date", domain.FormatDate(date))}

	if date.After(domain.NormalizeDate(s.now())) {
		s.LogDebug(ctx, "Skipping upstream fetch for future date", logAttrs...)
		return decimal.Zero, false, nil
	}

	rate, err := s.provider.FetchRate(ctx, currency, date)
	if err != nil {
		if errors.Is(err, providers.ErrRateUnavailable) {
			s.LogDebug(ctx, "No exchange rate published for date", append(logAttrs, slog.String("reason", err.Error()))...)
		} else {
			s.LogWarn(ctx, err, "Exchange rate fetch failed", logAttrs...)
		}
		return decimal.Zero, false, nil
	}
	if !rate.IsPositive() {
		s.LogWarn(ctx, nil, "Provider returned a non-positive exchange rate", append(logAttrs, slog.String("rate", rate.String()))...)
		return decimal.Zero, false, nil
	}

	stored, err := s.StoreRate(ctx, currency, date, rate)
	if err != nil {
		return decimal.Zero, false, err
	}
	return stored.Rate, true, nil
}

// FetchAndCacheRange asks the provider for every rate in [start, end] and
// stores each one under its own date. Provider failures yield an empty map.
func (s *exchangeRateService) FetchAndCacheRange(ctx context.Context, currency string, start, end time.Time) (map[time.Time]decimal.Decimal, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	result := make(map[time.Time]decimal.Decimal)
	if start.After(end) {
		return result, nil
	}

	rates, err := s.provider.FetchRange(ctx, currency, start, end)
	if err != nil {
		s.LogWarn(ctx, err, "Exchange rate range fetch failed",
			slog.String("currency", currency),
			slog.String("start", domain.FormatDate(start)),
			slog.String("end", domain.FormatDate(end)))
		return result, nil
	}

	for d, rate := range rates {
		d = domain.NormalizeDate(d)
		if !rate.IsPositive() || d.Before(start) || d.After(end) {
			continue
		}
		stored, err := s.StoreRate(ctx, currency, d, rate)
		if err != nil {
			return nil, err
		}
		result[d] = stored.Rate
	}
	return result, nil
}

// StoreRate upserts the rate for (currency, date) against the target currency.
func (s *exchangeRateService) StoreRate(ctx context.Context, currency string, date time.Time, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	if !domain.IsCurrencyCode(currency) {
		return nil, fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, currency)
	}
	if currency == s.targetCurrency {
		return nil, fmt.Errorf("%w: cannot store a rate from %s to itself", apperrors.ErrValidation, currency)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	stored, err := s.rateRepo.UpsertRate(ctx, domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Date:           domain.NormalizeDate(date),
		FromCurrency:   currency,
		ToCurrency:     s.targetCurrency,
		Rate:           rate.Round(domain.RateScale),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store exchange rate",
			slog.String("currency", currency), slog.String("date", domain.FormatDate(date)))
		return nil, fmt.Errorf("failed to store exchange rate: %w", err)
	}
	return stored, nil
}

// HasRateFor reports whether a rate is persisted for exactly (currency, date).
func (s *exchangeRateService) HasRateFor(ctx context.Context, currency string, date time.Time) (bool, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	if currency == s.targetCurrency {
		return true, nil
	}
	exists, err := s.rateRepo.ExistsForDate(ctx, currency, s.targetCurrency, domain.NormalizeDate(date))
	if err != nil {
		return false, fmt.Errorf("failed to check cached exchange rate: %w", err)
	}
	return exists, nil
}

// LatestRateOnOrBefore returns the newest persisted rate dated on or before date.
func (s *exchangeRateService) LatestRateOnOrBefore(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error) {
	currency = domain.NormalizeCurrencyCode(currency)
	date = domain.NormalizeDate(date)
	if !domain.IsCurrencyCode(currency) {
		return nil, fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, currency)
	}
	if currency == s.targetCurrency {
		return &domain.ExchangeRate{
			Date:         date,
			FromCurrency: currency,
			ToCurrency:   s.targetCurrency,
			Rate:         decimal.NewFromInt(1),
		}, nil
	}

	rate, err := s.rateRepo.FindLatestRateOnOrBefore(ctx, currency, s.targetCurrency, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest exchange rate: %w", err)
	}
	return rate, nil
}

// ListExchangeRates returns a page of persisted rates, newest first.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	filter := portsrepo.ExchangeRateFilter{
		FromCurrency: domain.NormalizeCurrencyCode(params.Currency),
		Limit:        params.Limit,
	}
	if filter.FromCurrency != "" {
		filter.ToCurrency = s.targetCurrency
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if params.DateFrom != "" {
		d, err := domain.ParseDate(params.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.DateFrom = &d
	}
	if params.DateTo != "" {
		d, err := domain.ParseDate(params.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		filter.DateTo = &d
	}
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := decodeRateCursor(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = cursor
	}

	pageSize := filter.Limit
	filter.Limit = pageSize + 1
	rates, err := s.rateRepo.ListRates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}

	resp := &dto.ListExchangeRatesResponse{}
	if len(rates) > pageSize {
		rates = rates[:pageSize]
		last := rates[len(rates)-1]
		token := pagination.EncodeDateKeyToken(last.Date, last.ExchangeRateID)
		resp.NextToken = &token
	}
	resp.Rates = dto.ToListExchangeRateResponse(rates)
	return resp, nil
}

func decodeRateCursor(token string) (*portsrepo.ExchangeRateCursor, error) {
	d, id, err := pagination.DecodeDateKeyToken(token)
	if err != nil {
		return nil, err
	}
	return &portsrepo.ExchangeRateCursor{Date: d, ExchangeRateID: id}, nil
}
