package models

import "time"

// FinancialRecord is the row shape of the financial_records table.
type FinancialRecord struct {
	RecordID       string    `db:"record_id"`
	Kind           string    `db:"kind"`
	Description    string    `db:"description"`
	AmountMinor    int64     `db:"amount_minor"`
	Currency       string    `db:"currency"`
	RecordDate     time.Time `db:"record_date"`
	AmountEURMinor *int64    `db:"amount_eur_minor"`
	AuditFields
}
