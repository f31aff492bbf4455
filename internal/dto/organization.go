package dto

import (
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name                string `json:"name" binding:"required"`
	TaxID               string `json:"taxID" binding:"required,len=11,numeric"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,iso4217"`
}

// UpdateOrganizationRequest defines mutable organization fields.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID      string    `json:"organizationID"`
	Name                string    `json:"name"`
	TaxID               string    `json:"taxID"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"`
}

// ListOrganizationsResponse wraps a list of organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// AddUserToOrganizationRequest defines data for adding a member.
type AddUserToOrganizationRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserRoleRequest changes a member's role.
type UpdateUserRoleRequest struct {
	Role domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY REMOVED"`
}

// UserOrganizationResponse defines data returned about a membership.
type UserOrganizationResponse struct {
	UserID         string                      `json:"userID"`
	UserName       string                      `json:"userName,omitempty"`
	OrganizationID string                      `json:"organizationID"`
	Role           domain.UserOrganizationRole `json:"role"`
	JoinedAt       time.Time                   `json:"joinedAt"`
}

// ListOrganizationUsersResponse wraps an organization's memberships.
type ListOrganizationUsersResponse struct {
	Users []UserOrganizationResponse `json:"users"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:      o.OrganizationID,
		Name:                o.Name,
		TaxID:               o.TaxID,
		DefaultCurrencyCode: o.DefaultCurrencyCode,
		IsActive:            o.IsActive,
		CreatedAt:           o.CreatedAt,
		CreatedBy:           o.CreatedBy,
		LastUpdatedAt:       o.LastUpdatedAt,
		LastUpdatedBy:       o.LastUpdatedBy,
	}
}

// ToListOrganizationsResponse converts a slice of domain.Organization to DTO.
func ToListOrganizationsResponse(os []domain.Organization) ListOrganizationsResponse {
	list := make([]OrganizationResponse, len(os))
	for i, o := range os {
		list[i] = ToOrganizationResponse(&o)
	}
	return ListOrganizationsResponse{Organizations: list}
}

// ToUserOrganizationResponse converts a domain.UserOrganization to its DTO.
func ToUserOrganizationResponse(uo *domain.UserOrganization) UserOrganizationResponse {
	return UserOrganizationResponse{
		UserID:         uo.UserID,
		UserName:       uo.UserName,
		OrganizationID: uo.OrganizationID,
		Role:           uo.Role,
		JoinedAt:       uo.JoinedAt,
	}
}

// ToListOrganizationUsersResponse converts memberships to DTO.
func ToListOrganizationUsersResponse(uos []domain.UserOrganization) ListOrganizationUsersResponse {
	list := make([]UserOrganizationResponse, len(uos))
	for i, uo := range uos {
		list[i] = ToUserOrganizationResponse(&uo)
	}
	return ListOrganizationUsersResponse{Users: list}
}
