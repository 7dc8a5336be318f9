package domain

import "time"

// RecordKind identifies which ledger a financial record belongs to.
type RecordKind string

const (
	RecordKindInvoice     RecordKind = "invoice"
	RecordKindBill        RecordKind = "bill"
	RecordKindOtherIncome RecordKind = "other_income"
)

// AllRecordKinds lists every kind the backfill walks by default.
var AllRecordKinds = []RecordKind{RecordKindInvoice, RecordKindBill, RecordKindOtherIncome}

// IsValid reports whether k is a known record kind.
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindInvoice, RecordKindBill, RecordKindOtherIncome:
		return true
	}
	return false
}

// FinancialRecord is an invoice, bill or other-income entry with an amount in
// its original currency and, once converted, its EUR equivalent.
type FinancialRecord struct {
	RecordID       string     `json:"recordID"`
	Kind           RecordKind `json:"kind"`
	Description    string     `json:"description"`
	AmountMinor    int64      `json:"amountMinor"`
	Currency       string     `json:"currency"`
	RecordDate     time.Time  `json:"recordDate"`
	AmountEURMinor *int64     `json:"amountEURMinor,omitempty"` // nil until converted
	AuditFields
}

// IsConverted reports whether the EUR equivalent has been derived.
func (r FinancialRecord) IsConverted() bool {
	return r.AmountEURMinor != nil
}
