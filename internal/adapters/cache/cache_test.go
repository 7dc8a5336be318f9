package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateRepo struct {
	mock.Mock
}

func (m *mockRateRepo) FindRateOnDate(ctx context.Context, from, to string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *mockRateRepo) FindLatestRateOnOrBefore(ctx context.Context, from, to string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *mockRateRepo) ExistsForDate(ctx context.Context, from, to string, date time.Time) (bool, error) {
	args := m.Called(ctx, from, to, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockRateRepo) ListRates(ctx context.Context, filter portsrepo.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *mockRateRepo) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (*domain.ExchangeRate, error) {
	return nil, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, *domain.ExchangeRate, time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Close() error { return nil }

var jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func usdRate() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: "r1",
		Date:           jan15,
		FromCurrency:   "USD",
		ToCurrency:     "EUR",
		Rate:           decimal.RequireFromString("1.0876"),
	}
}

func TestRateKey(t *testing.T) {
	assert.Equal(t, "exchange_rate:USD-EUR:2024-01-15", RateKey("usd", "EUR", jan15))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	now := jan15
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", usdRate(), time.Hour))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("1.0876")))

	now = now.Add(2 * time.Hour)
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_EvictionKeepsRefreshedEntry(t *testing.T) {
	c := NewMemoryCache()
	now := jan15
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", usdRate(), time.Hour))
	expiredAt := now.Add(2 * time.Hour)

	// A fresh Set lands after a reader saw the stale entry but before it evicts.
	now = expiredAt
	require.NoError(t, c.Set(ctx, "k", usdRate(), time.Hour))
	c.evictExpired("k", expiredAt)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, got, "refreshed entry must survive eviction of the stale one")

	c.evictExpired("k", expiredAt.Add(2*time.Hour))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_MissAndNoTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	got, err := c.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", usdRate(), 0))
	got, _ = c.Get(ctx, "k")
	assert.NotNil(t, got)

	require.NoError(t, c.Close())
	got, _ = c.Get(ctx, "k")
	assert.Nil(t, got)
}

func TestCachedRepository_HitSkipsDatabase(t *testing.T) {
	repo := new(mockRateRepo)
	memory := NewMemoryCache()
	cached := NewCachedExchangeRateRepository(repo, memory, time.Hour)
	ctx := context.Background()

	repo.On("FindRateOnDate", ctx, "USD", "EUR", jan15).Return(usdRate(), nil).Once()

	first, err := cached.FindRateOnDate(ctx, "USD", "EUR", jan15)
	require.NoError(t, err)
	second, err := cached.FindRateOnDate(ctx, "USD", "EUR", jan15)
	require.NoError(t, err)

	assert.Equal(t, first.ExchangeRateID, second.ExchangeRateID)
	repo.AssertNumberOfCalls(t, "FindRateOnDate", 1)

	exists, err := cached.ExistsForDate(ctx, "USD", "EUR", jan15)
	require.NoError(t, err)
	assert.True(t, exists)
	repo.AssertNotCalled(t, "ExistsForDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedRepository_MissesAreNotCached(t *testing.T) {
	repo := new(mockRateRepo)
	cached := NewCachedExchangeRateRepository(repo, NewMemoryCache(), time.Hour)
	ctx := context.Background()

	repo.On("FindRateOnDate", ctx, "USD", "EUR", jan15).Return(nil, apperrors.ErrNotFound).Twice()

	_, err := cached.FindRateOnDate(ctx, "USD", "EUR", jan15)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = cached.FindRateOnDate(ctx, "USD", "EUR", jan15)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestCachedRepository_UpsertPopulatesCache(t *testing.T) {
	repo := new(mockRateRepo)
	memory := NewMemoryCache()
	cached := NewCachedExchangeRateRepository(repo, memory, time.Hour)
	ctx := context.Background()

	repo.On("UpsertRate", ctx, *usdRate()).Return(usdRate(), nil).Once()

	_, err := cached.UpsertRate(ctx, *usdRate())
	require.NoError(t, err)

	got, err := memory.Get(ctx, RateKey("USD", "EUR", jan15))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ExchangeRateID)
}

func TestCachedRepository_CacheFailureFallsThrough(t *testing.T) {
	repo := new(mockRateRepo)
	cached := NewCachedExchangeRateRepository(repo, failingCache{}, time.Hour)
	ctx := context.Background()

	repo.On("FindRateOnDate", ctx, "USD", "EUR", jan15).Return(usdRate(), nil).Once()
	repo.On("ExistsForDate", ctx, "USD", "EUR", jan15).Return(false, nil).Once()

	rate, err := cached.FindRateOnDate(ctx, "USD", "EUR", jan15)
	require.NoError(t, err)
	assert.Equal(t, "r1", rate.ExchangeRateID)

	exists, err := cached.ExistsForDate(ctx, "USD", "EUR", jan15)
	require.NoError(t, err)
	assert.False(t, exists)
	repo.AssertExpectations(t)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://not-redis")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = Open(ctx, "none", "")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = Open(ctx, "memcached", "")
	assert.Error(t, err)

	_, err = Open(ctx, "redis", "http://not-redis")
	assert.Error(t, err)
}
