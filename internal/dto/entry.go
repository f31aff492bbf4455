package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Journal Entry DTOs ---

// CreateEntryLineRequest is one line of a new journal entry.
type CreateEntryLineRequest struct {
	AccountCode    string          `json:"accountCode" binding:"required"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	CostCenter     *string         `json:"costCenter,omitempty"`
}

// CreateEntryRequest defines data for creating a journal entry.
// Post persists the entry POSTED in one step for trusted automated callers;
// the default is a DRAFT awaiting an explicit post.
type CreateEntryRequest struct {
	EntryDate    time.Time                `json:"entryDate" binding:"required"`
	Narrative    string                   `json:"narrative" binding:"required"`
	CurrencyCode string                   `json:"currencyCode" binding:"required,iso4217"`
	ExchangeRate decimal.Decimal          `json:"exchangeRate"`
	Origin       string                   `json:"origin"`
	Post         bool                     `json:"post"`
	Lines        []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines mutable fields of a draft entry.
// A nil Lines keeps the existing lines.
type UpdateEntryRequest struct {
	EntryDate    *time.Time               `json:"entryDate,omitempty"`
	Narrative    *string                  `json:"narrative,omitempty"`
	CurrencyCode *string                  `json:"currencyCode,omitempty" binding:"omitempty,iso4217"`
	ExchangeRate *decimal.Decimal         `json:"exchangeRate,omitempty"`
	Lines        []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// ReverseEntryRequest carries the optional reversal date and narrative.
type ReverseEntryRequest struct {
	ReversalDate *time.Time `json:"reversalDate,omitempty"`
	Narrative    string     `json:"narrative"`
}

// AdjustEntryRequest opens a correction draft for a posted entry.
// With no Lines, the draft copies the original's lines for editing.
type AdjustEntryRequest struct {
	EntryDate *time.Time               `json:"entryDate,omitempty"`
	Narrative string                   `json:"narrative"`
	Lines     []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// VoidEntryRequest carries the mandatory void reason.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams carries listing filters and the pagination cursor.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
	Status    *domain.EntryStatus
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	AccountCode    string          `json:"accountCode"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	CostCenter     *string         `json:"costCenter,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	OrganizationID  string              `json:"organizationID"`
	PeriodID        string              `json:"periodID"`
	EntryDate       time.Time           `json:"entryDate"`
	Narrative       string              `json:"narrative"`
	CurrencyCode    string              `json:"currencyCode"`
	ExchangeRate    decimal.Decimal     `json:"exchangeRate"`
	Origin          string              `json:"origin"`
	Status          domain.EntryStatus  `json:"status"`
	ReversedEntryID *string             `json:"reversedEntryID,omitempty"`
	ReversalEntryID *string             `json:"reversalEntryID,omitempty"`
	VoidReason      *string             `json:"voidReason,omitempty"`
	Lines           []EntryLineResponse `json:"lines"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to its DTO.
func ToEntryLineResponse(l *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         l.LineID,
		EntryID:        l.EntryID,
		AccountCode:    l.AccountCode,
		Debit:          l.Debit,
		Credit:         l.Credit,
		Memo:           l.Memo,
		CounterpartyID: l.CounterpartyID,
		CostCenter:     l.CostCenter,
	}
}

// ToEntryLineResponses converts a slice of domain.EntryLine to DTOs.
func ToEntryLineResponses(lines []domain.EntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = ToEntryLineResponse(&l)
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to its DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		OrganizationID:  e.OrganizationID,
		PeriodID:        e.PeriodID,
		EntryDate:       e.EntryDate,
		Narrative:       e.Narrative,
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate,
		Origin:          e.Origin,
		Status:          e.Status,
		ReversedEntryID: e.ReversedEntryID,
		ReversalEntryID: e.ReversalEntryID,
		VoidReason:      e.VoidReason,
		Lines:           ToEntryLineResponses(e.Lines),
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
}

// ToListEntriesResponse converts a page of entries plus next token to DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	list := make([]EntryResponse, len(entries))
	for i, e := range entries {
		list[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: list, NextToken: nextToken}
}
