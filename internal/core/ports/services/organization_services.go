package services

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves a specific organization the user belongs to.
	GetOrganizationByID(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations the user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListOrganizationUsers retrieves all memberships of an organization.
	ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)

	// AuthorizeUserForOrganization verifies the user holds at least the given role.
	AuthorizeUserForOrganization(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) (*domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with the creator as ADMIN.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates mutable organization fields.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error)

	// AddUserToOrganization adds a member with a role.
	AddUserToOrganization(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) (*domain.UserOrganization, error)

	// UpdateUserRole changes a member's role, REMOVED included.
	UpdateUserRole(ctx context.Context, organizationID string, targetUserID string, req dto.UpdateUserRoleRequest, requestingUserID string) (*domain.UserOrganization, error)
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
