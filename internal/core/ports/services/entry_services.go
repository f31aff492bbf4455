package services

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// EntryReaderSvc defines read operations for journal entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry, lines included.
	GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries in an organization.
	ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for journal entry data
type EntryWriterSvc interface {
	// CreateEntry persists a new balanced draft entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry edits a draft entry; posted entries are immutable.
	UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions a draft to POSTED.
	PostEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror-image reversal of a posted entry.
	ReverseEntry(ctx context.Context, organizationID string, entryID string, req dto.ReverseEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// AdjustEntry reverses a posted entry and opens a corrected draft in its place.
	AdjustEntry(ctx context.Context, organizationID string, entryID string, req dto.AdjustEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// VoidEntry marks a posted entry VOIDED, keeping it on the record.
	VoidEntry(ctx context.Context, organizationID string, entryID string, req dto.VoidEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// CancelEntry discards a draft entry.
	CancelEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
// This is a facade for clients that need access to all operations
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
