package dto

import (
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Account DTOs ---

// CreateAccountRequest defines data for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code         string               `json:"code" binding:"required,account_code"`
	Name         string               `json:"name" binding:"required"`
	Nature       domain.AccountNature `json:"nature" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE CONTRA"`
	CurrencyCode string               `json:"currencyCode" binding:"required,iso4217"`
	Description  string               `json:"description"`
}

// UpdateAccountRequest defines mutable account fields.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	OrganizationID string               `json:"organizationID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Nature         domain.AccountNature `json:"nature"`
	CurrencyCode   string               `json:"currencyCode"`
	Description    string               `json:"description"`
	IsActive       bool                 `json:"isActive"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy  string               `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		OrganizationID: a.OrganizationID,
		Code:           a.Code,
		Name:           a.Name,
		Nature:         a.Nature,
		CurrencyCode:   a.CurrencyCode,
		Description:    a.Description,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastUpdatedAt:  a.LastUpdatedAt,
		LastUpdatedBy:  a.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i, a := range as {
		list[i] = ToAccountResponse(&a)
	}
	return ListAccountsResponse{Accounts: list}
}
