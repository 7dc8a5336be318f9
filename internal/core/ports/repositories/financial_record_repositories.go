package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// FinancialRecordFilter narrows a listing of financial records.
// Results are ordered by record date then id, oldest first.
type FinancialRecordFilter struct {
	Kinds       []domain.RecordKind
	PendingOnly bool // only records whose EUR amount is still unset
	After       *FinancialRecordCursor
	Limit       int
}

// FinancialRecordCursor is the keyset position of the last row of a page.
type FinancialRecordCursor struct {
	RecordDate time.Time
	RecordID   string
}

// FinancialRecordReader defines read operations for invoices, bills and other income.
type FinancialRecordReader interface {
	FindRecordByID(ctx context.Context, recordID string) (*domain.FinancialRecord, error)
	ListRecords(ctx context.Context, filter FinancialRecordFilter) ([]domain.FinancialRecord, error)
}

// FinancialRecordWriter defines write operations for financial records.
type FinancialRecordWriter interface {
	CreateRecord(ctx context.Context, record domain.FinancialRecord) error
	UpdateRecord(ctx context.Context, record domain.FinancialRecord) error
	// UpdateAmountEUR sets (or clears, with nil) the converted amount of a record.
	UpdateAmountEUR(ctx context.Context, recordID string, amountEURMinor *int64) error
}

// FinancialRecordRepositoryFacade combines the record reader and writer.
type FinancialRecordRepositoryFacade interface {
	FinancialRecordReader
	FinancialRecordWriter
}
