package utils

import (
	"github.com/shopspring/decimal"
)

// minorUnitDigits is the number of decimal places of a minor-unit amount.
const minorUnitDigits = 2

// FormatMinorUnits renders an amount held in minor units as a decimal string.
// Example: 123456 with currency EUR returns "1234.56 EUR"
func FormatMinorUnits(amountMinor int64, currency string) string {
	return decimal.New(amountMinor, -minorUnitDigits).StringFixed(minorUnitDigits) + " " + currency
}

// FormatOptionalMinorUnits is FormatMinorUnits for amounts that may be absent.
func FormatOptionalMinorUnits(amountMinor *int64, currency string) string {
	if amountMinor == nil {
		return "-"
	}
	return FormatMinorUnits(*amountMinor, currency)
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
