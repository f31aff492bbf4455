package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Reversed  EntryStatus = "REVERSED"
	Cancelled EntryStatus = "CANCELLED"
	Voided    EntryStatus = "VOIDED"
)

// JournalEntry is the journal_entries row.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	OrganizationID  string          `db:"organization_id"`
	PeriodID        string          `db:"period_id"`
	EntryDate       time.Time       `db:"entry_date"`
	Narrative       string          `db:"narrative"`
	CurrencyCode    string          `db:"currency_code"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	Origin          string          `db:"origin"`
	Status          EntryStatus     `db:"status"`
	ReversedEntryID *string         `db:"reversed_entry_id"`
	ReversalEntryID *string         `db:"reversal_entry_id"`
	VoidReason      *string         `db:"void_reason"`
	AuditFields
}

// EntryLine is the entry_lines row.
type EntryLine struct {
	LineID         string          `db:"line_id"`
	EntryID        string          `db:"entry_id"`
	AccountCode    string          `db:"account_code"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Memo           string          `db:"memo"`
	CounterpartyID *string         `db:"counterparty_id"`
	CostCenter     *string         `db:"cost_center"`
	AuditFields
	// Join columns used by listings and reconciliation scans.
	EntryDate      time.Time   `db:"entry_date"`
	EntryNarrative string      `db:"narrative"`
	EntryStatus    EntryStatus `db:"status"`
}
