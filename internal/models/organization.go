package models

import "time"

// Organization is the organizations row.
type Organization struct {
	OrganizationID      string  `db:"organization_id"`
	Name                string  `db:"name"`
	TaxID               string  `db:"tax_id"`
	DefaultCurrencyCode *string `db:"default_currency_code"`
	IsActive            bool    `db:"is_active"`
	AuditFields
}

// UserOrganization is the user_organizations membership row.
type UserOrganization struct {
	UserID         string    `db:"user_id"`
	UserName       string    `db:"user_name"`
	OrganizationID string    `db:"organization_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}
