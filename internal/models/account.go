package models

// AccountNature defines the fundamental accounting nature of an account.
type AccountNature string

const (
	Asset     AccountNature = "ASSET"
	Liability AccountNature = "LIABILITY"
	Equity    AccountNature = "EQUITY"
	Income    AccountNature = "INCOME"
	Expense   AccountNature = "EXPENSE"
	Contra    AccountNature = "CONTRA"
)

// Account is one row of an organization's chart of accounts.
type Account struct {
	AccountID      string        `db:"account_id"`
	OrganizationID string        `db:"organization_id"`
	Code           string        `db:"code"`
	Name           string        `db:"name"`
	Nature         AccountNature `db:"nature"`
	CurrencyCode   string        `db:"currency_code"`
	Description    string        `db:"description"`
	IsActive       bool          `db:"is_active"`
	AuditFields
}
