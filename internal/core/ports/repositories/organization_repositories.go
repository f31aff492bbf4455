package repositories

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUser retrieves the organizations the user belongs to.
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)

	// FindUserOrganization retrieves a user's membership in an organization.
	FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error)

	// ListUsersByOrganization retrieves all memberships of an organization.
	ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization and its creator's ADMIN
	// membership in one transaction.
	SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error

	// UpdateOrganization updates mutable organization fields.
	UpdateOrganization(ctx context.Context, organization domain.Organization) error

	// AddUserToOrganization persists a new membership.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserOrganizationRole changes an existing membership's role.
	UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}

// OrganizationRepositoryWithTx extends the facade with transaction capabilities
type OrganizationRepositoryWithTx interface {
	OrganizationRepositoryFacade
	TransactionManager
}
