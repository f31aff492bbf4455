package services

import (
	"context"
	"io"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// BankAccountSvc defines operations for bank account registration
type BankAccountSvc interface {
	// CreateBankAccount links a ledger account to a bank identity.
	CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves a specific bank account.
	GetBankAccountByID(ctx context.Context, organizationID string, bankAccountID string, requestingUserID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts of an organization.
	ListBankAccounts(ctx context.Context, organizationID string, requestingUserID string) ([]domain.BankAccount, error)
}

// StatementSvc defines operations for statement import and retrieval
type StatementSvc interface {
	// ImportStatement persists inline statement rows for a (bank account, period) pair.
	ImportStatement(ctx context.Context, organizationID string, bankAccountID string, req dto.ImportStatementRequest, requestingUserID string) (*domain.BankStatement, error)

	// ImportStatementXLSX parses an XLSX workbook and persists its rows.
	ImportStatementXLSX(ctx context.Context, organizationID string, bankAccountID string, periodID string, r io.Reader, requestingUserID string) (*domain.BankStatement, error)

	// GetStatement retrieves a statement with its rows and their match flags.
	GetStatement(ctx context.Context, organizationID string, bankAccountID string, statementID string, requestingUserID string) (*dto.StatementResponse, error)
}

// MatchSvc defines operations for pairing statement rows with entry lines
type MatchSvc interface {
	// SuggestMatches proposes pairings ranked by confidence without persisting anything.
	SuggestMatches(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) ([]domain.MatchSuggestion, error)

	// ConfirmMatch persists a one-to-one pairing.
	ConfirmMatch(ctx context.Context, organizationID string, bankAccountID string, req dto.CreateMatchRequest, requestingUserID string) (*domain.Match, error)

	// BulkConfirmMatches persists several pairings, reporting per-pair outcomes.
	// Pairs are independent; a failed pair does not roll back the others.
	BulkConfirmMatches(ctx context.Context, organizationID string, bankAccountID string, req dto.BulkMatchRequest, requestingUserID string) (*dto.BulkMatchResponse, error)

	// UnmatchByID removes a confirmed pairing.
	UnmatchByID(ctx context.Context, organizationID string, bankAccountID string, matchID string, requestingUserID string) error

	// ListMatches retrieves the matches of a statement scope.
	ListMatches(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) ([]domain.Match, error)
}

// ReconciliationOutcomeSvc defines summary and finalize operations
type ReconciliationOutcomeSvc interface {
	// Summary computes the current book versus bank position.
	Summary(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) (*domain.Reconciliation, error)

	// Finalize persists the reconciliation outcome for the period.
	Finalize(ctx context.Context, organizationID string, bankAccountID string, req dto.FinalizeReconciliationRequest, requestingUserID string) (*domain.Reconciliation, error)
}

// ReconciliationSvcFacade combines all reconciliation-related service interfaces
// This is a facade for clients that need access to all operations
type ReconciliationSvcFacade interface {
	BankAccountSvc
	StatementSvc
	MatchSvc
	ReconciliationOutcomeSvc
}
