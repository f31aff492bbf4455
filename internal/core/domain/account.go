package domain

// AccountNature defines the fundamental accounting nature of an account and
// drives its normal balance sign.
type AccountNature string

const (
	Asset     AccountNature = "ASSET"
	Liability AccountNature = "LIABILITY"
	Equity    AccountNature = "EQUITY"
	Income    AccountNature = "INCOME"
	Expense   AccountNature = "EXPENSE"
	Contra    AccountNature = "CONTRA"
)

// Account is one node of an organization's chart of accounts. Entry lines
// reference accounts by code, never by surrogate ID, because codes are the
// stable identity the tax books are built on. Accounts referenced by any line
// are deactivated, never deleted.
type Account struct {
	AccountID      string        `json:"accountID"`      // Primary key (UUID)
	OrganizationID string        `json:"organizationID"` // FK -> organizations
	Code           string        `json:"code"`           // Hierarchical dotted code, e.g. "10.10"; unique per organization
	Name           string        `json:"name"`
	Nature         AccountNature `json:"nature"`
	CurrencyCode   string        `json:"currencyCode"`
	Description    string        `json:"description"`
	IsActive       bool          `json:"isActive"`
	AuditFields
}
