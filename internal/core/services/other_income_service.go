package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// applyOtherIncomeConversion recomputes the EUR amount of an other-income
// record. A missing rate leaves the amount unset so the save still goes through.
func (s *financialRecordService) applyOtherIncomeConversion(ctx context.Context, record *domain.FinancialRecord) error {
	amount, ok, err := s.rates.ConvertToEUR(ctx, record.AmountMinor, record.Currency, record.RecordDate)
	if err != nil {
		return fmt.Errorf("failed to convert other income to EUR: %w", err)
	}
	if !ok {
		s.LogWarn(ctx, nil, "No exchange rate available, saving other income without EUR amount",
			slog.String("record_id", record.RecordID),
			slog.String("currency", record.Currency),
			slog.String("date", domain.FormatDate(record.RecordDate)))
		record.AmountEURMinor = nil
		return nil
	}
	record.AmountEURMinor = &amount
	return nil
}
