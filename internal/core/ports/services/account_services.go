package services

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, organizationID string, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves the organization's chart of accounts.
	ListAccounts(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates mutable account fields.
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
