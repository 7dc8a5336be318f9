package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const financialRecordColumns = `record_id, kind, description, amount_minor, currency, record_date, amount_eur_minor, created_at, updated_at`

// PgxFinancialRecordRepository persists invoices, bills and other income.
type PgxFinancialRecordRepository struct {
	BaseRepository
}

// NewPgxFinancialRecordRepository creates a new PgxFinancialRecordRepository.
func NewPgxFinancialRecordRepository(db DBTX) *PgxFinancialRecordRepository {
	return &PgxFinancialRecordRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.FinancialRecordRepositoryFacade = (*PgxFinancialRecordRepository)(nil)

func scanFinancialRecord(row pgx.Row) (*domain.FinancialRecord, error) {
	var m models.FinancialRecord
	if err := row.Scan(
		&m.RecordID, &m.Kind, &m.Description, &m.AmountMinor, &m.Currency,
		&m.RecordDate, &m.AmountEURMinor, &m.CreatedAt, &m.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	d := mapping.ToDomainFinancialRecord(m)
	return &d, nil
}

func (r *PgxFinancialRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.FinancialRecord, error) {
	query := `SELECT ` + financialRecordColumns + ` FROM financial_records WHERE record_id = $1;`
	record, err := scanFinancialRecord(r.DB.QueryRow(ctx, query, recordID))
	if err != nil {
		return nil, r.wrapError(err, "record with ID "+recordID+" not found", "failed to find record")
	}
	return record, nil
}

// ListRecords returns records ordered by date then id, continuing after filter.After.
func (r *PgxFinancialRecordRepository) ListRecords(ctx context.Context, filter portsrepo.FinancialRecordFilter) ([]domain.FinancialRecord, error) {
	var (
		conds []string
		args  []any
	)
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		conds = append(conds, "kind = ANY("+addArg(kinds)+")")
	}
	if filter.PendingOnly {
		conds = append(conds, "amount_eur_minor IS NULL")
	}
	if filter.After != nil {
		d := addArg(domain.NormalizeDate(filter.After.RecordDate))
		id := addArg(filter.After.RecordID)
		conds = append(conds, fmt.Sprintf("(record_date, record_id) > (%s, %s)", d, id))
	}

	query := "SELECT " + financialRecordColumns + " FROM financial_records"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY record_date ASC, record_id ASC"
	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, r.wrapError(err, "records not found", "failed to list records")
	}
	defer rows.Close()

	records := []domain.FinancialRecord{}
	for rows.Next() {
		record, err := scanFinancialRecord(rows)
		if err != nil {
			return nil, r.wrapError(err, "record not found", "failed to scan record")
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrapError(err, "records not found", "error iterating records")
	}
	return records, nil
}

func (r *PgxFinancialRecordRepository) CreateRecord(ctx context.Context, record domain.FinancialRecord) error {
	m := mapping.ToModelFinancialRecord(record)
	query := `
		INSERT INTO financial_records (` + financialRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.DB.Exec(ctx, query,
		m.RecordID, m.Kind, m.Description, m.AmountMinor, m.Currency,
		m.RecordDate, m.AmountEURMinor, m.CreatedAt, m.LastUpdatedAt,
	)
	return r.wrapError(err, "record not found", "failed to create record")
}

func (r *PgxFinancialRecordRepository) UpdateRecord(ctx context.Context, record domain.FinancialRecord) error {
	m := mapping.ToModelFinancialRecord(record)
	query := `
		UPDATE financial_records
		SET kind = $2, description = $3, amount_minor = $4, currency = $5,
			record_date = $6, amount_eur_minor = $7, updated_at = $8
		WHERE record_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.RecordID, m.Kind, m.Description, m.AmountMinor, m.Currency,
		m.RecordDate, m.AmountEURMinor, m.LastUpdatedAt,
	)
	if err != nil {
		return r.wrapError(err, "record not found", "failed to update record")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("record with ID " + record.RecordID + " not found for update")
	}
	return nil
}

// UpdateAmountEUR sets only the converted amount, leaving the rest of the row alone.
func (r *PgxFinancialRecordRepository) UpdateAmountEUR(ctx context.Context, recordID string, amountEURMinor *int64) error {
	query := `UPDATE financial_records SET amount_eur_minor = $2, updated_at = $3 WHERE record_id = $1;`
	tag, err := r.DB.Exec(ctx, query, recordID, amountEURMinor, time.Now().UTC())
	if err != nil {
		return r.wrapError(err, "record not found", "failed to update EUR amount")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("record with ID " + recordID + " not found for update")
	}
	return nil
}
