package repositories

import (
	"context"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a specific bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, organizationID string, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccountsByOrganization retrieves all bank accounts of an organization.
	ListBankAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, bankAccount domain.BankAccount) error
}

// StatementReader defines read operations for imported statement data
type StatementReader interface {
	// FindStatementByID retrieves a statement by its unique identifier.
	FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error)

	// FindStatementByPeriod retrieves the statement imported for a (bank account, period) pair.
	FindStatementByPeriod(ctx context.Context, bankAccountID string, periodID string) (*domain.BankStatement, error)

	// FindStatementByTransaction retrieves the statement one of the bank
	// account's transactions belongs to.
	FindStatementByTransaction(ctx context.Context, bankAccountID string, transactionID string) (*domain.BankStatement, error)

	// ListTransactionsByStatement retrieves all statement rows in import order.
	ListTransactionsByStatement(ctx context.Context, statementID string) ([]domain.BankTransaction, error)
}

// StatementWriter defines write operations for imported statement data
type StatementWriter interface {
	// SaveStatement persists a statement and its transaction rows in one transaction.
	SaveStatement(ctx context.Context, statement domain.BankStatement, transactions []domain.BankTransaction) error

	// DeleteStatement removes a statement and its rows; it fails if any row is matched.
	DeleteStatement(ctx context.Context, statementID string) error
}

// MatchReader defines read operations for reconciliation matches
type MatchReader interface {
	// FindMatchByID retrieves a specific match by its unique identifier.
	FindMatchByID(ctx context.Context, matchID string) (*domain.Match, error)

	// ListMatchesByStatement retrieves all matches whose bank transaction belongs to the statement.
	ListMatchesByStatement(ctx context.Context, statementID string) ([]domain.Match, error)

	// ListUnmatchedPostedLines retrieves POSTED entry lines on the given account
	// code, dated within [start, end), that are not yet matched.
	ListUnmatchedPostedLines(ctx context.Context, organizationID string, accountCode string, start time.Time, end time.Time) ([]domain.EntryLine, error)

	// ListPostedLines retrieves every POSTED entry line on the given account
	// code dated within [start, end), matched or not.
	ListPostedLines(ctx context.Context, organizationID string, accountCode string, start time.Time, end time.Time) ([]domain.EntryLine, error)
}

// MatchWriter defines write operations for reconciliation matches
type MatchWriter interface {
	// SaveMatch persists a match; the unique indexes on both sides make a
	// second match of either side fail.
	SaveMatch(ctx context.Context, match domain.Match) error

	// DeleteMatch removes a confirmed match.
	DeleteMatch(ctx context.Context, matchID string) error
}

// ReconciliationOutcomeReader defines read operations for finalized reconciliations
type ReconciliationOutcomeReader interface {
	// FindReconciliation retrieves the finalized record for a (bank account, period) pair.
	FindReconciliation(ctx context.Context, bankAccountID string, periodID string) (*domain.Reconciliation, error)
}

// ReconciliationOutcomeWriter defines write operations for finalized reconciliations
type ReconciliationOutcomeWriter interface {
	// SaveReconciliation persists the finalized outcome record.
	SaveReconciliation(ctx context.Context, reconciliation domain.Reconciliation) error
}

// ReconciliationRepositoryFacade combines all reconciliation-related repository interfaces
// This is a facade for clients that need access to all operations
type ReconciliationRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	StatementReader
	StatementWriter
	MatchReader
	MatchWriter
	ReconciliationOutcomeReader
	ReconciliationOutcomeWriter
}

// ReconciliationRepositoryWithTx extends the facade with transaction capabilities
type ReconciliationRepositoryWithTx interface {
	ReconciliationRepositoryFacade
	TransactionManager
}
