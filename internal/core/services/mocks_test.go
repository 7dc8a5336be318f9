package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindRateOnDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ExistsForDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (bool, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, filter portsrepo.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// UpsertRate echoes the rate back unless the expectation returns a row.
func (m *MockExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return &rate, nil
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

var _ providers.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) FetchRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currency, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateProvider) FetchRange(ctx context.Context, currency string, start, end time.Time) (map[time.Time]decimal.Decimal, error) {
	args := m.Called(ctx, currency, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[time.Time]decimal.Decimal), args.Error(1)
}

// --- Mock FinancialRecordRepository ---
type MockFinancialRecordRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialRecordRepositoryFacade = (*MockFinancialRecordRepository)(nil)

func (m *MockFinancialRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.FinancialRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialRecord), args.Error(1)
}

func (m *MockFinancialRecordRepository) ListRecords(ctx context.Context, filter portsrepo.FinancialRecordFilter) ([]domain.FinancialRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialRecord), args.Error(1)
}

func (m *MockFinancialRecordRepository) CreateRecord(ctx context.Context, record domain.FinancialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinancialRecordRepository) UpdateRecord(ctx context.Context, record domain.FinancialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinancialRecordRepository) UpdateAmountEUR(ctx context.Context, recordID string, amountEURMinor *int64) error {
	args := m.Called(ctx, recordID, amountEURMinor)
	return args.Error(0)
}

// --- Mock rate resolver ---
type MockRateResolver struct {
	mock.Mock
}

var _ portssvc.ExchangeRateResolverSvc = (*MockRateResolver)(nil)

func (m *MockRateResolver) GetRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, currency, date)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRateResolver) ConvertToEUR(ctx context.Context, amountMinor int64, currency string, date time.Time) (int64, bool, error) {
	args := m.Called(ctx, amountMinor, currency, date)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRateResolver) HasRateFor(ctx context.Context, currency string, date time.Time) (bool, error) {
	args := m.Called(ctx, currency, date)
	return args.Bool(0), args.Error(1)
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 {
	return &v
}
