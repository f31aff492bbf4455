package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

// organizationService provides organization and membership operations.
type organizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(organizationRepo portsrepo.OrganizationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
		userRepo:         userRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// roleRank orders roles for minimum-role checks. REMOVED ranks below everything.
func roleRank(role domain.UserOrganizationRole) int {
	switch role {
	case domain.RoleAdmin:
		return 3
	case domain.RoleMember:
		return 2
	case domain.RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// AuthorizeUserForOrganization verifies the user holds at least the given role.
func (s *organizationService) AuthorizeUserForOrganization(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) (*domain.UserOrganization, error) {
	membership, err := s.organizationRepo.FindUserOrganization(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user is not a member of this organization", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if membership.Role == domain.RoleRemoved || roleRank(membership.Role) < roleRank(requiredRole) {
		return nil, fmt.Errorf("%w: role %s does not permit this action", apperrors.ErrForbidden, membership.Role)
	}
	return membership, nil
}

// CreateOrganization persists a new organization with the creator as ADMIN.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	organization := domain.Organization{
		OrganizationID:      uuid.NewString(),
		Name:                req.Name,
		TaxID:               req.TaxID,
		DefaultCurrencyCode: &req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: organization.OrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an organization with tax ID %s already exists", apperrors.ErrDuplicate, req.TaxID)
		}
		return nil, err
	}

	logger.Info("organization created", slog.String("organization_id", organization.OrganizationID), slog.String("created_by", creatorUserID))
	return &organization, nil
}

// GetOrganizationByID retrieves a specific organization the user belongs to.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.organizationRepo.FindOrganizationByID(ctx, organizationID)
}

// ListUserOrganizations retrieves the organizations the user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	return s.organizationRepo.ListOrganizationsByUser(ctx, userID)
}

// ListOrganizationUsers retrieves all memberships of an organization.
func (s *organizationService) ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.organizationRepo.ListUsersByOrganization(ctx, organizationID)
}

// UpdateOrganization updates mutable organization fields.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		organization.Name = *req.Name
	}
	if req.IsActive != nil {
		organization.IsActive = *req.IsActive
	}
	organization.LastUpdatedAt = time.Now().UTC()
	organization.LastUpdatedBy = requestingUserID

	if err := s.organizationRepo.UpdateOrganization(ctx, *organization); err != nil {
		return nil, err
	}
	return organization, nil
}

// AddUserToOrganization adds a member with a role.
func (s *organizationService) AddUserToOrganization(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) (*domain.UserOrganization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	membership := domain.UserOrganization{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           req.Role,
		JoinedAt:       time.Now().UTC(),
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user is already a member", apperrors.ErrDuplicate)
		}
		return nil, err
	}

	logger.Info("user added to organization", slog.String("organization_id", organizationID), slog.String("user_id", req.UserID), slog.String("role", string(req.Role)))
	return &membership, nil
}

// UpdateUserRole changes a member's role, REMOVED included.
func (s *organizationService) UpdateUserRole(ctx context.Context, organizationID string, targetUserID string, req dto.UpdateUserRoleRequest, requestingUserID string) (*domain.UserOrganization, error) {
	if _, err := s.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	membership, err := s.organizationRepo.FindUserOrganization(ctx, targetUserID, organizationID)
	if err != nil {
		return nil, err
	}

	if err := s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, req.Role); err != nil {
		return nil, err
	}
	membership.Role = req.Role
	return membership, nil
}
