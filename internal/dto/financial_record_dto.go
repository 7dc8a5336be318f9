package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SaveRecordRequest creates or replaces a financial record.
type SaveRecordRequest struct {
	Kind        domain.RecordKind `json:"kind" binding:"required,oneof=invoice bill other_income" validate:"required,oneof=invoice bill other_income"`
	Description string            `json:"description" binding:"max=500" validate:"max=500"`
	AmountMinor *int64            `json:"amountMinor" binding:"required" validate:"required"`
	Currency    string            `json:"currency" binding:"required,currency" validate:"required,currency"`
	RecordDate  string            `json:"recordDate" binding:"required,datetime=2006-01-02" validate:"required,datetime=2006-01-02"`
}

// ListRecordsParams are the query parameters for listing records.
type ListRecordsParams struct {
	Kind      string  `form:"type" binding:"omitempty,oneof=invoice bill other_income"`
	Pending   bool    `form:"pending"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// RecordResponse is the API view of a financial record.
type RecordResponse struct {
	RecordID       string    `json:"recordID"`
	Kind           string    `json:"kind"`
	Description    string    `json:"description"`
	AmountMinor    int64     `json:"amountMinor"`
	Currency       string    `json:"currency"`
	RecordDate     string    `json:"recordDate"`
	AmountEURMinor *int64    `json:"amountEURMinor,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ListRecordsResponse is one page of records.
type ListRecordsResponse struct {
	Records   []RecordResponse `json:"records"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToRecordResponse converts a domain.FinancialRecord to its response DTO.
func ToRecordResponse(r *domain.FinancialRecord) RecordResponse {
	return RecordResponse{
		RecordID:       r.RecordID,
		Kind:           string(r.Kind),
		Description:    r.Description,
		AmountMinor:    r.AmountMinor,
		Currency:       r.Currency,
		RecordDate:     domain.FormatDate(r.RecordDate),
		AmountEURMinor: r.AmountEURMinor,
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
}

// ToRecordResponses converts a slice of records.
func ToRecordResponses(records []domain.FinancialRecord) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
