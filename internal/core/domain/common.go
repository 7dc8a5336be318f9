package domain

import "time"

// AuditFields holds the timestamps every persisted entity carries.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DateLayout is the wire format for calendar dates (ISO 8601, no time of day).
const DateLayout = "2006-01-02"

// NormalizeDate drops the time-of-day and location from t, keeping the calendar
// date as seen in t's own location. All dates used as cache keys go through here.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
