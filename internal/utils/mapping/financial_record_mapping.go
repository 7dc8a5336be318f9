package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelFinancialRecord converts a domain FinancialRecord to its row shape.
func ToModelFinancialRecord(d domain.FinancialRecord) models.FinancialRecord {
	return models.FinancialRecord{
		RecordID:       d.RecordID,
		Kind:           string(d.Kind),
		Description:    d.Description,
		AmountMinor:    d.AmountMinor,
		Currency:       d.Currency,
		RecordDate:     domain.NormalizeDate(d.RecordDate),
		AmountEURMinor: d.AmountEURMinor,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialRecord converts a financial_records row to the domain type.
func ToDomainFinancialRecord(m models.FinancialRecord) domain.FinancialRecord {
	return domain.FinancialRecord{
		RecordID:       m.RecordID,
		Kind:           domain.RecordKind(m.Kind),
		Description:    m.Description,
		AmountMinor:    m.AmountMinor,
		Currency:       m.Currency,
		RecordDate:     domain.NormalizeDate(m.RecordDate),
		AmountEURMinor: m.AmountEURMinor,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
