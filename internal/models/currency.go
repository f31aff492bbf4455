package models

// Currency is the currencies row.
type Currency struct {
	CurrencyCode  string `db:"currency_code"`
	Symbol        string `db:"symbol"`
	Name          string `db:"name"`
	DecimalPlaces int32  `db:"decimal_places"`
	AuditFields
}
