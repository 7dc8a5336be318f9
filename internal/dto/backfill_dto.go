package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// BackfillRequest is the HTTP body for triggering a backfill run.
// DryRun defaults to true so a bare POST never writes.
type BackfillRequest struct {
	Types     []string `json:"types" binding:"omitempty,dive,oneof=invoice bill other_income"`
	Force     bool     `json:"force"`
	DryRun    *bool    `json:"dryRun"`
	BatchSize int      `json:"batchSize" binding:"omitempty,min=1,max=1000"`
	Pause     string   `json:"pause"`
}

// ToBackfillOptions converts the request into service options.
func (r BackfillRequest) ToBackfillOptions(defaultPause time.Duration) (domain.BackfillOptions, error) {
	opts := domain.BackfillOptions{
		Force:     r.Force,
		DryRun:    true,
		BatchSize: r.BatchSize,
		Pause:     defaultPause,
	}
	if r.DryRun != nil {
		opts.DryRun = *r.DryRun
	}
	for _, t := range r.Types {
		opts.Kinds = append(opts.Kinds, domain.RecordKind(t))
	}
	if r.Pause != "" {
		d, err := time.ParseDuration(r.Pause)
		if err != nil || d < 0 {
			return opts, fmt.Errorf("invalid pause %q", r.Pause)
		}
		opts.Pause = d
	}
	return opts, nil
}
