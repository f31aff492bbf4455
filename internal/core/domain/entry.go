package domain

import (
	"errors"
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

// IsTerminal reports whether no further status transition is permitted.
func (s EntryStatus) IsTerminal() bool {
	return s == Reversed || s == Cancelled || s == Voided
}

// JournalEntry is a balanced set of debit/credit lines recorded against
// accounts on a date within a fiscal period.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`        // Primary key (UUID)
	OrganizationID  string          `json:"organizationID"` // FK -> organizations
	PeriodID        string          `json:"periodID"`       // FK -> periods; entry date must fall within the period
	EntryDate       time.Time       `json:"entryDate"`
	Narrative       string          `json:"narrative"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // >= 0; exactly 1 for the functional currency
	Origin          string          `json:"origin"`       // Producing workflow tag: manual, sale, purchase, inventory, treasury, ...
	Status          EntryStatus     `json:"status"`
	ReversedEntryID *string         `json:"reversedEntryID,omitempty"` // Entry this one reverses, when it is a reversal
	ReversalEntryID *string         `json:"reversalEntryID,omitempty"` // Entry that reversed this one
	VoidReason      *string         `json:"voidReason,omitempty"`      // Set when status is VOIDED
	AuditFields
	Lines []EntryLine `json:"lines,omitempty"` // Often loaded separately
}

// EntryLine is one debit-or-credit movement within an entry, against one account.
type EntryLine struct {
	LineID         string          `json:"lineID"`  // Primary key (UUID)
	EntryID        string          `json:"entryID"` // FK -> journal_entries
	AccountCode    string          `json:"accountCode"`
	Debit          decimal.Decimal `json:"debit"`  // >= 0
	Credit         decimal.Decimal `json:"credit"` // >= 0; exactly one of debit/credit is nonzero
	Memo           string          `json:"memo,omitempty"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	CostCenter     *string         `json:"costCenter,omitempty"`
	AuditFields
	// Populated on joins for listing and reconciliation; not stored on the line.
	EntryDate      time.Time   `json:"entryDate"`
	EntryNarrative string      `json:"entryNarrative,omitempty"`
	EntryStatus    EntryStatus `json:"entryStatus,omitempty"`
}

// Amount returns the nonzero side of the line.
func (l EntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// IsDebit reports whether the line moves the debit side.
func (l EntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Validate checks the line shape: exactly one of debit/credit must be
// positive, the other zero, and neither may be negative.
func (l EntryLine) Validate() error {
	if l.AccountCode == "" {
		return errors.New("entry line account code is required")
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return errors.New("entry line amounts must not be negative")
	}
	if l.Debit.IsZero() && l.Credit.IsZero() {
		return errors.New("entry line must have a debit or a credit amount")
	}
	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return errors.New("entry line must not have both debit and credit amounts")
	}
	return nil
}
