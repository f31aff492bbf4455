package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount links a ledger account to an external bank identity.
type BankAccount struct {
	BankAccountID  string `db:"bank_account_id"`
	OrganizationID string `db:"organization_id"`
	AccountCode    string `db:"account_code"`
	BankName       string `db:"bank_name"`
	AccountNumber  string `db:"account_number"`
	CurrencyCode   string `db:"currency_code"`
	AuditFields
}

// BankStatement is the bank_statements row.
type BankStatement struct {
	StatementID      string          `db:"statement_id"`
	BankAccountID    string          `db:"bank_account_id"`
	PeriodID         string          `db:"period_id"`
	ClosingBalance   decimal.Decimal `db:"closing_balance"`
	TransactionCount int             `db:"transaction_count"`
	AuditFields
}

// BankTransaction is the bank_transactions row.
type BankTransaction struct {
	TransactionID string          `db:"transaction_id"`
	StatementID   string          `db:"statement_id"`
	Seq           int             `db:"seq"`
	Date          time.Time       `db:"txn_date"`
	Description   string          `db:"description"`
	Reference     string          `db:"reference"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Balance       decimal.Decimal `db:"balance"`
}

// Match is the reconciliation_matches row; unique on both sides.
type Match struct {
	MatchID           string    `db:"match_id"`
	BankTransactionID string    `db:"bank_transaction_id"`
	EntryLineID       string    `db:"entry_line_id"`
	Source            string    `db:"source"`
	MatchedBy         string    `db:"matched_by"`
	MatchedAt         time.Time `db:"matched_at"`
}

// Reconciliation is the finalized outcome row for (bank_account, period).
type Reconciliation struct {
	ReconciliationID  string          `db:"reconciliation_id"`
	BankAccountID     string          `db:"bank_account_id"`
	PeriodID          string          `db:"period_id"`
	BookBalance       decimal.Decimal `db:"book_balance"`
	BankBalance       decimal.Decimal `db:"bank_balance"`
	PendingDebits     decimal.Decimal `db:"pending_debits"`
	PendingCredits    decimal.Decimal `db:"pending_credits"`
	ReconciledBalance decimal.Decimal `db:"reconciled_balance"`
	Difference        decimal.Decimal `db:"difference"`
	UnreconciledCount int             `db:"unreconciled_count"`
	Notes             string          `db:"notes"`
	FinalizedBy       string          `db:"finalized_by"`
	FinalizedAt       time.Time       `db:"finalized_at"`
}
