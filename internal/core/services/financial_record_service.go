package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := dto.RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

type financialRecordService struct {
	BaseService
	recordRepo     portsrepo.FinancialRecordRepositoryFacade
	rates          portssvc.ExchangeRateResolverSvc
	targetCurrency string
	now            func() time.Time
}

// NewFinancialRecordService creates the record service. Saves of other-income
// records are converted through rates; records in targetCurrency (EUR when
// empty) keep their amount.
func NewFinancialRecordService(recordRepo portsrepo.FinancialRecordRepositoryFacade, rates portssvc.ExchangeRateResolverSvc, targetCurrency string) portssvc.FinancialRecordSvcFacade {
	return &financialRecordService{
		recordRepo:     recordRepo,
		rates:          rates,
		targetCurrency: targetCurrencyOrDefault(targetCurrency),
		now:            time.Now,
	}
}

// validate normalizes req in place and checks it.
func (s *financialRecordService) validate(req *dto.SaveRecordRequest) (time.Time, error) {
	req.Currency = domain.NormalizeCurrencyCode(req.Currency)
	if err := recordValidator.Struct(req); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	recordDate, err := domain.ParseDate(req.RecordDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid record date", apperrors.ErrValidation)
	}
	return recordDate, nil
}

func (s *financialRecordService) CreateRecord(ctx context.Context, req dto.SaveRecordRequest) (*domain.FinancialRecord, error) {
	recordDate, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := domain.FinancialRecord{
		RecordID:    uuid.NewString(),
		Kind:        req.Kind,
		Description: req.Description,
		AmountMinor: *req.AmountMinor,
		Currency:    req.Currency,
		RecordDate:  recordDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.deriveAmountEUR(ctx, &record, nil); err != nil {
		return nil, err
	}

	if err := s.recordRepo.CreateRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to create financial record", slog.String("kind", string(record.Kind)))
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	s.LogInfo(ctx, "Financial record created",
		slog.String("record_id", record.RecordID),
		slog.String("kind", string(record.Kind)))
	return &record, nil
}

func (s *financialRecordService) UpdateRecord(ctx context.Context, recordID string, req dto.SaveRecordRequest) (*domain.FinancialRecord, error) {
	recordDate, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get record for update: %w", err)
	}
	previous := *existing

	updated := *existing
	updated.Kind = req.Kind
	updated.Description = req.Description
	updated.AmountMinor = *req.AmountMinor
	updated.Currency = req.Currency
	updated.RecordDate = recordDate
	updated.LastUpdatedAt = s.now()

	if err := s.deriveAmountEUR(ctx, &updated, &previous); err != nil {
		return nil, err
	}

	if err := s.recordRepo.UpdateRecord(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update financial record", slog.String("record_id", recordID))
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return &updated, nil
}

// deriveAmountEUR sets the EUR amount a record should be saved with.
// Other income is always reconverted. Invoices and bills keep a previous
// conversion only while the amount, currency and date are unchanged.
func (s *financialRecordService) deriveAmountEUR(ctx context.Context, record *domain.FinancialRecord, previous *domain.FinancialRecord) error {
	if record.Kind == domain.RecordKindOtherIncome {
		return s.applyOtherIncomeConversion(ctx, record)
	}
	if record.Currency == s.targetCurrency {
		amount := record.AmountMinor
		record.AmountEURMinor = &amount
		return nil
	}
	if previous != nil && previous.IsConverted() &&
		previous.AmountMinor == record.AmountMinor &&
		previous.Currency == record.Currency &&
		previous.RecordDate.Equal(record.RecordDate) {
		record.AmountEURMinor = previous.AmountEURMinor
		return nil
	}
	record.AmountEURMinor = nil
	return nil
}

func (s *financialRecordService) GetRecord(ctx context.Context, recordID string) (*domain.FinancialRecord, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

func (s *financialRecordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error) {
	filter := portsrepo.FinancialRecordFilter{
		PendingOnly: params.Pending,
		Limit:       params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if params.Kind != "" {
		kind := domain.RecordKind(params.Kind)
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown record type %q", apperrors.ErrValidation, params.Kind)
		}
		filter.Kinds = []domain.RecordKind{kind}
	}
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := decodeRecordCursor(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = cursor
	}

	pageSize := filter.Limit
	filter.Limit = pageSize + 1
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	resp := &dto.ListRecordsResponse{}
	if len(records) > pageSize {
		records = records[:pageSize]
		token := encodeRecordCursor(records[len(records)-1])
		resp.NextToken = &token
	}
	resp.Records = dto.ToRecordResponses(records)
	return resp, nil
}

func encodeRecordCursor(last domain.FinancialRecord) string {
	return pagination.EncodeDateKeyToken(last.RecordDate, last.RecordID)
}

func decodeRecordCursor(token string) (*portsrepo.FinancialRecordCursor, error) {
	d, id, err := pagination.DecodeDateKeyToken(token)
	if err != nil {
		return nil, err
	}
	return &portsrepo.FinancialRecordCursor{RecordDate: d, RecordID: id}, nil
}
