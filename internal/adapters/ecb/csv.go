package ecb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const (
	periodColumn = "TIME_PERIOD"
	valueColumn  = "OBS_VALUE"
)

// observation is one data row of a csvdata response.
type observation struct {
	rawDate  string
	rawValue string
	date     time.Time // zero when rawDate does not parse
	value    decimal.Decimal
	parsed   bool
}

func (o observation) valid() bool {
	return o.parsed && o.value.IsPositive()
}

// parseObservations reads the header, locates the period and value columns by
// name and returns every data row. An empty body yields no rows; a header
// without the expected columns is reported as ErrRateUnavailable.
func parseObservations(r io.Reader) ([]observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", providers.ErrRateUnavailable, err)
	}

	periodIdx, valueIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case periodColumn:
			periodIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if periodIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%w: missing %s or %s column", providers.ErrRateUnavailable, periodColumn, valueColumn)
	}

	var out []observation
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("%w: unreadable row: %v", providers.ErrRateUnavailable, err)
		}
		if len(record) <= periodIdx || len(record) <= valueIdx {
			out = append(out, observation{})
			continue
		}

		o := observation{
			rawDate:  strings.TrimSpace(record[periodIdx]),
			rawValue: strings.TrimSpace(record[valueIdx]),
		}
		if d, err := domain.ParseDate(o.rawDate); err == nil {
			o.date = d
		}
		if v, err := decimal.NewFromString(o.rawValue); err == nil {
			o.value = v
			o.parsed = true
		}
		out = append(out, o)
	}
	return out, nil
}
