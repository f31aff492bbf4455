package domain

// FunctionalCurrencyCode is the functional currency of the ledger. Entries in
// this currency must carry an exchange rate of exactly 1.
const FunctionalCurrencyCode = "PEN"

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary key (e.g. "PEN")
	Symbol        string `json:"symbol"`       // e.g. "S/"
	Name          string `json:"name"`         // e.g. "Sol"
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}
