package repositories

import (
	"context"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByOrganization retrieves a paginated list of entries using token-based pagination.
	// A nil status returns entries in every state; it returns the entries and a token for the next page.
	ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error)

	// ListEntriesByPeriod retrieves all entries dated inside the given period,
	// optionally filtered by status.
	ListEntriesByPeriod(ctx context.Context, organizationID string, periodID string, status *domain.EntryStatus) ([]domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)

	// FindLineByID retrieves a single entry line with its parent entry columns joined in.
	FindLineByID(ctx context.Context, organizationID string, lineID string) (*domain.EntryLine, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists a new draft entry and its lines within a transaction.
	// The target period row is checked inside the same transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// UpdateEntry updates a draft entry's header, replacing its lines when lines is non-nil.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// PostEntry flips a draft to POSTED after re-verifying, inside the transaction,
	// that the target period still accepts mutations.
	PostEntry(ctx context.Context, organizationID string, entryID string, periodID string, postedBy string, postedAt time.Time) error

	// CancelEntry marks a draft entry CANCELLED. The status predicate runs in
	// the UPDATE itself, so a draft that was posted concurrently is not lost.
	CancelEntry(ctx context.Context, organizationID string, entryID string, cancelledBy string, cancelledAt time.Time) error

	// SaveReversal persists a reversal entry (already POSTED) and marks the
	// original entry REVERSED with cross links, all in one transaction.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.EntryLine, originalEntryID string) error

	// VoidEntry marks a posted entry VOIDED and records the reason.
	VoidEntry(ctx context.Context, organizationID string, entryID string, reason string, voidedBy string, voidedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
