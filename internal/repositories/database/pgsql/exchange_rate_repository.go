package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const exchangeRateColumns = `exchange_rate_id, rate_date, from_currency, to_currency, rate, created_at, updated_at`

// PgxExchangeRateRepository persists reference rates in the exchange_rates table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db DBTX) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var m models.ExchangeRate
	if err := row.Scan(
		&m.ExchangeRateID, &m.RateDate, &m.FromCurrency, &m.ToCurrency,
		&m.Rate, &m.CreatedAt, &m.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// FindRateOnDate retrieves the rate stored for exactly date.
func (r *PgxExchangeRateRepository) FindRateOnDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date = $3;
	`
	rate, err := scanExchangeRate(r.DB.QueryRow(ctx, query,
		strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), domain.NormalizeDate(date)))
	if err != nil {
		return nil, r.wrapError(err,
			fmt.Sprintf("exchange rate %s/%s on %s not found", fromCurrency, toCurrency, domain.FormatDate(date)),
			"failed to find exchange rate")
	}
	return rate, nil
}

// FindLatestRateOnOrBefore retrieves the most recent rate dated on or before date.
func (r *PgxExchangeRateRepository) FindLatestRateOnOrBefore(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	rate, err := scanExchangeRate(r.DB.QueryRow(ctx, query,
		strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), domain.NormalizeDate(date)))
	if err != nil {
		return nil, r.wrapError(err,
			fmt.Sprintf("no exchange rate %s/%s on or before %s", fromCurrency, toCurrency, domain.FormatDate(date)),
			"failed to find latest exchange rate")
	}
	return rate, nil
}

// ExistsForDate reports whether a rate is stored for exactly date.
func (r *PgxExchangeRateRepository) ExistsForDate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM exchange_rates
			WHERE from_currency = $1 AND to_currency = $2 AND rate_date = $3
		);
	`
	var exists bool
	err := r.DB.QueryRow(ctx, query,
		strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), domain.NormalizeDate(date)).Scan(&exists)
	if err != nil {
		return false, r.wrapError(err, "exchange rate not found", "failed to check exchange rate")
	}
	return exists, nil
}

// UpsertRate inserts the rate, or overwrites the value of the row already
// stored for the same (date, from, to). The stored row is returned, so the
// original id and created_at survive an overwrite.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (rate_date, from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at
		RETURNING ` + exchangeRateColumns + `;
	`
	stored, err := scanExchangeRate(r.DB.QueryRow(ctx, query,
		m.ExchangeRateID, m.RateDate, strings.ToUpper(m.FromCurrency), strings.ToUpper(m.ToCurrency),
		m.Rate, m.CreatedAt, m.LastUpdatedAt,
	))
	if err != nil {
		return nil, r.wrapError(err, "exchange rate not found", "failed to upsert exchange rate")
	}
	return stored, nil
}

// ListRates retrieves rates newest first, continuing after filter.After when set.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, filter portsrepo.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	var (
		conds []string
		args  []any
	)
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.FromCurrency != "" {
		conds = append(conds, "from_currency = "+addArg(strings.ToUpper(filter.FromCurrency)))
	}
	if filter.ToCurrency != "" {
		conds = append(conds, "to_currency = "+addArg(strings.ToUpper(filter.ToCurrency)))
	}
	if filter.DateFrom != nil {
		conds = append(conds, "rate_date >= "+addArg(domain.NormalizeDate(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conds = append(conds, "rate_date <= "+addArg(domain.NormalizeDate(*filter.DateTo)))
	}
	if filter.After != nil {
		d := addArg(domain.NormalizeDate(filter.After.Date))
		id := addArg(filter.After.ExchangeRateID)
		conds = append(conds, fmt.Sprintf("(rate_date, exchange_rate_id) < (%s, %s)", d, id))
	}

	query := "SELECT " + exchangeRateColumns + " FROM exchange_rates"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rate_date DESC, exchange_rate_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, r.wrapError(err, "exchange rates not found", "failed to list exchange rates")
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, r.wrapError(err, "exchange rate not found", "failed to scan exchange rate")
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrapError(err, "exchange rates not found", "error iterating exchange rates")
	}
	return rates, nil
}
