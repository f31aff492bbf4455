package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

var ErrInvalidAccountCode = errors.New("account code must be digits optionally separated by dots")

var accountCodePattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	currencySvc     portssvc.CurrencySvcFacade
	organizationSvc portssvc.OrganizationSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, organizationSvc portssvc.OrganizationSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		currencySvc:     currencySvc,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validation.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !accountCodePattern.MatchString(req.Code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountCode, req.Code)
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		Nature:         req.Nature,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		return nil, err
	}

	logger.Info("account created", slog.String("account_id", account.AccountID), slog.String("code", req.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, requestingUserID string) (*domain.Account, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
}

// ListAccounts retrieves the organization's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Account, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountsByOrganization(ctx, organizationID)
}

// UpdateAccount updates mutable account fields.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}
