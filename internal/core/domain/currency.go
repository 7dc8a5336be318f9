package domain

import "strings"

// DefaultTargetCurrency is the currency every amount is converted into.
const DefaultTargetCurrency = "EUR"

// NormalizeCurrencyCode upper-cases and trims an ISO 4217 code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCurrencyCode reports whether code looks like a 3-letter ISO code.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
