package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// FinancialRecordReaderSvc defines read operations for financial records
type FinancialRecordReaderSvc interface {
	GetRecord(ctx context.Context, recordID string) (*domain.FinancialRecord, error)
	ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error)
}

// FinancialRecordWriterSvc defines write operations for financial records.
// Saving an other-income record recomputes its EUR amount.
type FinancialRecordWriterSvc interface {
	CreateRecord(ctx context.Context, req dto.SaveRecordRequest) (*domain.FinancialRecord, error)
	UpdateRecord(ctx context.Context, recordID string, req dto.SaveRecordRequest) (*domain.FinancialRecord, error)
}

// FinancialRecordSvcFacade combines the record reader and writer services
type FinancialRecordSvcFacade interface {
	FinancialRecordReaderSvc
	FinancialRecordWriterSvc
}

// BackfillSvc derives missing EUR amounts for stored records.
type BackfillSvc interface {
	RunBackfill(ctx context.Context, opts domain.BackfillOptions) (*domain.BackfillReport, error)
}
