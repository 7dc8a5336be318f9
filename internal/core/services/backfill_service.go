package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

const defaultBackfillBatchSize = 100

type backfillService struct {
	BaseService
	recordRepo     portsrepo.FinancialRecordRepositoryFacade
	rates          portssvc.ExchangeRateResolverSvc
	targetCurrency string
	sleep          func(ctx context.Context, d time.Duration) error
}

// NewBackfillService creates the service that fills in missing EUR amounts.
// Records already in targetCurrency (EUR when empty) convert as identity.
func NewBackfillService(recordRepo portsrepo.FinancialRecordRepositoryFacade, rates portssvc.ExchangeRateResolverSvc, targetCurrency string) portssvc.BackfillSvc {
	return &backfillService{
		recordRepo:     recordRepo,
		rates:          rates,
		targetCurrency: targetCurrencyOrDefault(targetCurrency),
		sleep:          sleepCtx,
	}
}

func targetCurrencyOrDefault(code string) string {
	if code = domain.NormalizeCurrencyCode(code); code != "" {
		return code
	}
	return domain.DefaultTargetCurrency
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RunBackfill walks the selected records page by page and converts each one.
// Missing rates are counted as failures; repository errors abort the run.
func (s *backfillService) RunBackfill(ctx context.Context, opts domain.BackfillOptions) (*domain.BackfillReport, error) {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = domain.AllRecordKinds
	}
	for _, k := range kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("unknown record type %q", k)
		}
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBackfillBatchSize
	}

	s.LogInfo(ctx, "Starting EUR backfill",
		slog.Any("kinds", kinds),
		slog.Bool("force", opts.Force),
		slog.Bool("dry_run", opts.DryRun),
		slog.Int("batch_size", batchSize))

	report := &domain.BackfillReport{DryRun: opts.DryRun}
	filter := portsrepo.FinancialRecordFilter{
		Kinds:       kinds,
		PendingOnly: !opts.Force,
		Limit:       batchSize,
	}
	for {
		records, err := s.recordRepo.ListRecords(ctx, filter)
		if err != nil {
			return report, fmt.Errorf("failed to list records for backfill: %w", err)
		}
		for _, record := range records {
			fetched, err := s.backfillRecord(ctx, record, opts, report)
			if err != nil {
				return report, err
			}
			if fetched {
				if err := s.sleep(ctx, opts.Pause); err != nil {
					return report, err
				}
			}
		}
		if len(records) < batchSize {
			break
		}
		last := records[len(records)-1]
		filter.After = &portsrepo.FinancialRecordCursor{RecordDate: last.RecordDate, RecordID: last.RecordID}
	}

	s.LogInfo(ctx, "EUR backfill finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("converted", report.Converted),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed))
	return report, nil
}

// backfillRecord converts one record and adds it to the report. It reports
// whether the resolution may have gone upstream, so the caller can pause.
func (s *backfillService) backfillRecord(ctx context.Context, record domain.FinancialRecord, opts domain.BackfillOptions, report *domain.BackfillReport) (bool, error) {
	item := domain.BackfillItem{
		RecordID:    record.RecordID,
		Kind:        record.Kind,
		Currency:    record.Currency,
		RecordDate:  record.RecordDate,
		AmountMinor: record.AmountMinor,
		PreviousEUR: record.AmountEURMinor,
	}
	logAttrs := []any{
		slog.String("record_id", record.RecordID),
		slog.String("kind", string(record.Kind)),
		slog.String("currency", record.Currency),
		slog.String("date", domain.FormatDate(record.RecordDate)),
	}

	if record.Currency == s.targetCurrency {
		if record.IsConverted() {
			item.Outcome = domain.BackfillSkipped
			report.Add(item)
			return false, nil
		}
		amount := record.AmountMinor
		item.AmountEURMinor = &amount
		item.Cached = true
		if err := s.persist(ctx, record.RecordID, &amount, opts.DryRun); err != nil {
			return false, err
		}
		item.Outcome = domain.BackfillConverted
		report.Add(item)
		return false, nil
	}

	cached, err := s.rates.HasRateFor(ctx, record.Currency, record.RecordDate)
	if err != nil {
		return false, err
	}
	item.Cached = cached
	if cached {
		s.LogDebug(ctx, "Rate already cached", logAttrs...)
	} else {
		s.LogDebug(ctx, "Rate not cached, resolving upstream", logAttrs...)
	}

	amount, ok, err := s.rates.ConvertToEUR(ctx, record.AmountMinor, record.Currency, record.RecordDate)
	if err != nil {
		return !cached, err
	}
	if !ok {
		s.LogWarn(ctx, nil, "No exchange rate available for record", logAttrs...)
		item.Outcome = domain.BackfillFailed
		report.Add(item)
		return !cached, nil
	}

	item.AmountEURMinor = &amount
	if err := s.persist(ctx, record.RecordID, &amount, opts.DryRun); err != nil {
		return !cached, err
	}
	item.Outcome = domain.BackfillConverted
	report.Add(item)
	return !cached, nil
}

func (s *backfillService) persist(ctx context.Context, recordID string, amount *int64, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := s.recordRepo.UpdateAmountEUR(ctx, recordID, amount); err != nil {
		s.LogError(ctx, err, "Failed to persist EUR amount", slog.String("record_id", recordID))
		return fmt.Errorf("failed to update EUR amount for record %s: %w", recordID, err)
	}
	return nil
}
