package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount links one ledger account to an external bank identity.
type BankAccount struct {
	BankAccountID  string `json:"bankAccountID"` // Primary key (UUID)
	OrganizationID string `json:"organizationID"`
	AccountCode    string `json:"accountCode"` // Linked ledger account code
	BankName       string `json:"bankName"`
	AccountNumber  string `json:"accountNumber"`
	CurrencyCode   string `json:"currencyCode"`
	AuditFields
}

// BankStatement is an uploaded statement for a bank account and period.
type BankStatement struct {
	StatementID      string          `json:"statementID"` // Primary key (UUID)
	BankAccountID    string          `json:"bankAccountID"`
	PeriodID         string          `json:"periodID"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	TransactionCount int             `json:"transactionCount"`
	AuditFields
}

// BankTransaction is one ordered row of a bank statement. Amounts are the
// bank's view: a statement credit is money into the bank account.
type BankTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	StatementID   string          `json:"statementID"`
	Seq           int             `json:"seq"` // Position within the statement
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"` // Running balance after this row
}

// Amount returns the nonzero side of the transaction.
func (t BankTransaction) Amount() decimal.Decimal {
	if t.Debit.IsPositive() {
		return t.Debit
	}
	return t.Credit
}

// IsCredit reports whether the row is money into the bank account.
func (t BankTransaction) IsCredit() bool {
	return t.Credit.IsPositive()
}

// MatchSource records how a match came to exist.
type MatchSource string

const (
	MatchSuggested MatchSource = "SUGGESTED"
	MatchManual    MatchSource = "MANUAL"
)

// Match pairs one bank transaction with one entry line. The relation is 1:1
// on both sides; removing a match returns both sides to unreconciled.
type Match struct {
	MatchID           string      `json:"matchID"` // Primary key (UUID)
	BankTransactionID string      `json:"bankTransactionID"`
	EntryLineID       string      `json:"entryLineID"`
	Source            MatchSource `json:"source"`
	MatchedBy         string      `json:"matchedBy"`
	MatchedAt         time.Time   `json:"matchedAt"`
}

// MatchConfidence ranks suggestion quality.
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "HIGH"
	ConfidenceMedium MatchConfidence = "MEDIUM"
	ConfidenceLow    MatchConfidence = "LOW"
)

// MatchSuggestion is one ranked (transaction, line) candidate pair.
type MatchSuggestion struct {
	Transaction BankTransaction `json:"transaction"`
	Line        EntryLine       `json:"line"`
	Confidence  MatchConfidence `json:"confidence"`
	Reason      string          `json:"reason"`
}

// Reconciliation records the finalized outcome for a bank account and period,
// including any accepted outstanding difference.
type Reconciliation struct {
	ReconciliationID  string          `json:"reconciliationID"` // Primary key (UUID)
	BankAccountID     string          `json:"bankAccountID"`
	PeriodID          string          `json:"periodID"`
	BookBalance       decimal.Decimal `json:"bookBalance"`
	BankBalance       decimal.Decimal `json:"bankBalance"`
	PendingDebits     decimal.Decimal `json:"pendingDebits"`
	PendingCredits    decimal.Decimal `json:"pendingCredits"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	Difference        decimal.Decimal `json:"difference"`
	UnreconciledCount int             `json:"unreconciledCount"`
	Notes             string          `json:"notes"`
	FinalizedBy       string          `json:"finalizedBy"`
	FinalizedAt       time.Time       `json:"finalizedAt"`
}
