package dto

// ConvertRequest asks for an amount to be converted into EUR.
type ConvertRequest struct {
	AmountMinor *int64 `json:"amountMinor" binding:"required"`
	Currency    string `json:"currency" binding:"required,currency"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ConvertResponse carries the converted amount. Converted is false when no
// rate could be resolved, in which case AmountEURMinor is omitted.
type ConvertResponse struct {
	AmountMinor    int64  `json:"amountMinor"`
	Currency       string `json:"currency"`
	Date           string `json:"date"`
	AmountEURMinor *int64 `json:"amountEURMinor,omitempty"`
	Converted      bool   `json:"converted"`
}
