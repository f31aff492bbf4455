package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Bank Account DTOs ---

// CreateBankAccountRequest links a ledger account to a bank identity.
type CreateBankAccountRequest struct {
	AccountCode   string `json:"accountCode" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	CurrencyCode  string `json:"currencyCode" binding:"required,iso4217"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string    `json:"bankAccountID"`
	OrganizationID string    `json:"organizationID"`
	AccountCode    string    `json:"accountCode"`
	BankName       string    `json:"bankName"`
	AccountNumber  string    `json:"accountNumber"`
	CurrencyCode   string    `json:"currencyCode"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ListBankAccountsResponse wraps a list of bank accounts.
type ListBankAccountsResponse struct {
	BankAccounts []BankAccountResponse `json:"bankAccounts"`
}

// --- Statement DTOs ---

// ImportStatementRequest declares the period and closing balance of an upload.
// The transaction rows arrive either inline or as an XLSX upload.
type ImportStatementRequest struct {
	PeriodID       string                 `json:"periodID" binding:"required"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
	Transactions   []StatementLineRequest `json:"transactions,omitempty" binding:"omitempty,dive"`
}

// StatementLineRequest is one imported bank transaction row.
type StatementLineRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// BankTransactionResponse defines the data returned for a statement row.
type BankTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	StatementID   string          `json:"statementID"`
	Seq           int             `json:"seq"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	Matched       bool            `json:"matched"`
}

// StatementResponse defines the data returned for an imported statement.
type StatementResponse struct {
	StatementID      string                    `json:"statementID"`
	BankAccountID    string                    `json:"bankAccountID"`
	PeriodID         string                    `json:"periodID"`
	ClosingBalance   decimal.Decimal           `json:"closingBalance"`
	TransactionCount int                       `json:"transactionCount"`
	Transactions     []BankTransactionResponse `json:"transactions,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
	CreatedBy        string                    `json:"createdBy"`
}

// --- Match DTOs ---

// CreateMatchRequest pairs one bank transaction with one entry line.
type CreateMatchRequest struct {
	BankTransactionID string `json:"bankTransactionID" binding:"required"`
	EntryLineID       string `json:"entryLineID" binding:"required"`
}

// BulkMatchRequest pairs several bank transactions with entry lines at once.
type BulkMatchRequest struct {
	Matches []CreateMatchRequest `json:"matches" binding:"required,min=1,dive"`
}

// BulkMatchItemResult reports the outcome of one pairing in a bulk request.
type BulkMatchItemResult struct {
	BankTransactionID string         `json:"bankTransactionID"`
	EntryLineID       string         `json:"entryLineID"`
	Match             *MatchResponse `json:"match,omitempty"`
	Error             string         `json:"error,omitempty"`
}

// BulkMatchResponse wraps per-pair results of a bulk match request.
type BulkMatchResponse struct {
	Results   []BulkMatchItemResult `json:"results"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// MatchResponse defines the data returned for a confirmed match.
type MatchResponse struct {
	MatchID           string    `json:"matchID"`
	BankTransactionID string    `json:"bankTransactionID"`
	EntryLineID       string    `json:"entryLineID"`
	Source            string    `json:"source"`
	MatchedBy         string    `json:"matchedBy"`
	MatchedAt         time.Time `json:"matchedAt"`
}

// ListMatchesResponse wraps the matches of one reconciliation scope.
type ListMatchesResponse struct {
	Matches []MatchResponse `json:"matches"`
}

// SuggestionResponse is one proposed pairing with its confidence.
type SuggestionResponse struct {
	Transaction BankTransactionResponse `json:"transaction"`
	Line        EntryLineResponse       `json:"line"`
	Confidence  string                  `json:"confidence"`
	Reason      string                  `json:"reason"`
}

// ListSuggestionsResponse wraps suggestion output.
type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// --- Summary / Finalize DTOs ---

// FinalizeReconciliationRequest carries the period to finalize, optional notes,
// and optional caller-supplied pending amounts. When a pending amount is given
// it overrides the computed one, so a nonzero residual difference can be
// accepted deliberately.
type FinalizeReconciliationRequest struct {
	PeriodID       string           `json:"periodID" binding:"required"`
	PendingDebits  *decimal.Decimal `json:"pendingDebits,omitempty"`
	PendingCredits *decimal.Decimal `json:"pendingCredits,omitempty"`
	Notes          string           `json:"notes"`
}

// ReconciliationSummaryResponse reports the book versus bank position.
type ReconciliationSummaryResponse struct {
	BankAccountID     string          `json:"bankAccountID"`
	PeriodID          string          `json:"periodID"`
	BookBalance       decimal.Decimal `json:"bookBalance"`
	BankBalance       decimal.Decimal `json:"bankBalance"`
	PendingDebits     decimal.Decimal `json:"pendingDebits"`
	PendingCredits    decimal.Decimal `json:"pendingCredits"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"`
	Difference        decimal.Decimal `json:"difference"`
	UnreconciledCount int             `json:"unreconciledCount"`
}

// ReconciliationResponse defines the finalized reconciliation record.
type ReconciliationResponse struct {
	ReconciliationID string    `json:"reconciliationID"`
	ReconciliationSummaryResponse
	Notes       string    `json:"notes"`
	FinalizedBy string    `json:"finalizedBy"`
	FinalizedAt time.Time `json:"finalizedAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  b.BankAccountID,
		OrganizationID: b.OrganizationID,
		AccountCode:    b.AccountCode,
		BankName:       b.BankName,
		AccountNumber:  b.AccountNumber,
		CurrencyCode:   b.CurrencyCode,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
	}
}

// ToListBankAccountsResponse converts a slice of domain.BankAccount to DTO.
func ToListBankAccountsResponse(bs []domain.BankAccount) ListBankAccountsResponse {
	list := make([]BankAccountResponse, len(bs))
	for i, b := range bs {
		list[i] = ToBankAccountResponse(&b)
	}
	return ListBankAccountsResponse{BankAccounts: list}
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
func ToBankTransactionResponse(t *domain.BankTransaction, matched bool) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID: t.TransactionID,
		StatementID:   t.StatementID,
		Seq:           t.Seq,
		Date:          t.Date,
		Description:   t.Description,
		Reference:     t.Reference,
		Debit:         t.Debit,
		Credit:        t.Credit,
		Balance:       t.Balance,
		Matched:       matched,
	}
}

// ToStatementResponse converts a domain.BankStatement plus rows to DTO.
func ToStatementResponse(s *domain.BankStatement, txns []domain.BankTransaction, matchedIDs map[string]bool) StatementResponse {
	rows := make([]BankTransactionResponse, len(txns))
	for i, t := range txns {
		rows[i] = ToBankTransactionResponse(&t, matchedIDs[t.TransactionID])
	}
	return StatementResponse{
		StatementID:      s.StatementID,
		BankAccountID:    s.BankAccountID,
		PeriodID:         s.PeriodID,
		ClosingBalance:   s.ClosingBalance,
		TransactionCount: s.TransactionCount,
		Transactions:     rows,
		CreatedAt:        s.CreatedAt,
		CreatedBy:        s.CreatedBy,
	}
}

// ToMatchResponse converts a domain.Match to its DTO.
func ToMatchResponse(m *domain.Match) MatchResponse {
	return MatchResponse{
		MatchID:           m.MatchID,
		BankTransactionID: m.BankTransactionID,
		EntryLineID:       m.EntryLineID,
		Source:            string(m.Source),
		MatchedBy:         m.MatchedBy,
		MatchedAt:         m.MatchedAt,
	}
}

// ToListMatchesResponse converts a slice of domain.Match to DTO.
func ToListMatchesResponse(ms []domain.Match) ListMatchesResponse {
	list := make([]MatchResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMatchResponse(&m)
	}
	return ListMatchesResponse{Matches: list}
}

// ToListSuggestionsResponse converts domain suggestions to DTO.
func ToListSuggestionsResponse(ss []domain.MatchSuggestion) ListSuggestionsResponse {
	list := make([]SuggestionResponse, len(ss))
	for i, s := range ss {
		list[i] = SuggestionResponse{
			Transaction: ToBankTransactionResponse(&s.Transaction, false),
			Line:        ToEntryLineResponse(&s.Line),
			Confidence:  string(s.Confidence),
			Reason:      s.Reason,
		}
	}
	return ListSuggestionsResponse{Suggestions: list}
}

// ToReconciliationSummaryResponse converts a domain.Reconciliation summary to DTO.
func ToReconciliationSummaryResponse(r *domain.Reconciliation) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		BankAccountID:     r.BankAccountID,
		PeriodID:          r.PeriodID,
		BookBalance:       r.BookBalance,
		BankBalance:       r.BankBalance,
		PendingDebits:     r.PendingDebits,
		PendingCredits:    r.PendingCredits,
		ReconciledBalance: r.ReconciledBalance,
		Difference:        r.Difference,
		UnreconciledCount: r.UnreconciledCount,
	}
}

// ToReconciliationResponse converts a finalized domain.Reconciliation to DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:              r.ReconciliationID,
		ReconciliationSummaryResponse: ToReconciliationSummaryResponse(r),
		Notes:                         r.Notes,
		FinalizedBy:                   r.FinalizedBy,
		FinalizedAt:                   r.FinalizedAt,
	}
}
