package domain

import "time"

// BackfillOptions controls a run of the EUR backfill over financial records.
type BackfillOptions struct {
	Kinds     []RecordKind
	Force     bool          // re-derive records that already have an EUR amount
	DryRun    bool          // compute but never persist
	BatchSize int           // records fetched per page
	Pause     time.Duration // wait between upstream-bound conversions
}

// BackfillOutcome classifies what happened to one record.
type BackfillOutcome string

const (
	BackfillConverted BackfillOutcome = "converted"
	BackfillSkipped   BackfillOutcome = "skipped"
	BackfillFailed    BackfillOutcome = "failed"
)

// BackfillItem is the per-record line of a backfill report.
type BackfillItem struct {
	RecordID       string          `json:"recordID"`
	Kind           RecordKind      `json:"kind"`
	Currency       string          `json:"currency"`
	RecordDate     time.Time       `json:"recordDate"`
	AmountMinor    int64           `json:"amountMinor"`
	PreviousEUR    *int64          `json:"previousEUR,omitempty"`
	AmountEURMinor *int64          `json:"amountEURMinor,omitempty"`
	Outcome        BackfillOutcome `json:"outcome"`
	Cached         bool            `json:"cached"` // rate was already persisted before the run touched it
}

// BackfillReport summarizes a backfill run.
type BackfillReport struct {
	DryRun    bool           `json:"dryRun"`
	Scanned   int            `json:"scanned"`
	Converted int            `json:"converted"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	Items     []BackfillItem `json:"items"`
}

// Add records item in the report and bumps the matching counter.
func (r *BackfillReport) Add(item BackfillItem) {
	r.Scanned++
	switch item.Outcome {
	case BackfillConverted:
		r.Converted++
	case BackfillSkipped:
		r.Skipped++
	case BackfillFailed:
		r.Failed++
	}
	r.Items = append(r.Items, item)
}
