package domain

import "time"

// Organization is an isolated tenant owning a chart of accounts, periods,
// journal entries, and bank reconciliations.
type Organization struct {
	OrganizationID      string  `json:"organizationID"` // Primary key (UUID)
	Name                string  `json:"name"`
	TaxID               string  `json:"taxID"` // RUC
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the roles a user can hold within an organization.
type UserOrganizationRole string

const (
	RoleAdmin    UserOrganizationRole = "ADMIN"
	RoleMember   UserOrganizationRole = "MEMBER"
	RoleReadOnly UserOrganizationRole = "READONLY"
	RoleRemoved  UserOrganizationRole = "REMOVED"
)

// UserOrganization represents the membership of a user in an organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	UserName       string               `json:"userName"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}
