package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	f, err := parseFlags(nil, 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, f.dryRun)
	assert.False(t, f.force)
	assert.Equal(t, 100, f.batch)
	assert.Equal(t, 200*time.Millisecond, f.pause)

	opts, err := f.options()
	require.NoError(t, err)
	assert.Empty(t, opts.Kinds)
	assert.True(t, opts.DryRun)
}

func TestParseFlags_Overrides(t *testing.T) {
	f, err := parseFlags([]string{"-type", "Bill, other_income", "-force", "-dry-run=false", "-batch", "25", "-pause", "1s"}, 0)
	require.NoError(t, err)

	opts, err := f.options()
	require.NoError(t, err)
	assert.Equal(t, []domain.RecordKind{domain.RecordKindBill, domain.RecordKindOtherIncome}, opts.Kinds)
	assert.True(t, opts.Force)
	assert.False(t, opts.DryRun)
	assert.Equal(t, 25, opts.BatchSize)
	assert.Equal(t, time.Second, opts.Pause)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := parseFlags([]string{"-batch", "0"}, 0)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-pause", "-1s"}, 0)
	assert.Error(t, err)

	f, err := parseFlags([]string{"-type", "receipt"}, 0)
	require.NoError(t, err)
	_, err = f.options()
	assert.ErrorContains(t, err, "receipt")
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true
	eur := int64(1000)
	report := &domain.BackfillReport{DryRun: true}
	report.Add(domain.BackfillItem{
		RecordID: "r1", Kind: domain.RecordKindBill, Currency: "USD",
		RecordDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), AmountMinor: 1100,
		AmountEURMinor: &eur, Outcome: domain.BackfillConverted,
	})
	report.Add(domain.BackfillItem{
		RecordID: "r2", Kind: domain.RecordKindInvoice, Currency: "XAU",
		RecordDate: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), AmountMinor: 500,
		Outcome: domain.BackfillFailed,
	})

	var out bytes.Buffer
	printReport(&out, report, "EUR", false, 1500*time.Millisecond)
	text := out.String()

	assert.NotContains(t, text, "r1", "converted records are only listed in verbose mode")
	assert.Contains(t, text, "r2")
	assert.Contains(t, text, "5.00 XAU -> -")
	assert.Contains(t, text, "Scanned 2 records in 1.5s (dry run, nothing saved)")
	assert.Contains(t, text, "converted: 1")
	assert.Contains(t, text, "failed:    1")

	out.Reset()
	printReport(&out, report, "EUR", true, time.Second)
	assert.Contains(t, out.String(), "11.00 USD -> 10.00 EUR")
}
