package mapping

import (
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
)

func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:      d.OrganizationID,
		Name:                d.Name,
		TaxID:               d.TaxID,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:      m.OrganizationID,
		Name:                m.Name,
		TaxID:               m.TaxID,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainOrganizations(ms []models.Organization) []domain.Organization {
	out := make([]domain.Organization, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainOrganization(m))
	}
	return out
}

func ToDomainUserOrganization(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		UserName:       m.UserName,
		OrganizationID: m.OrganizationID,
		Role:           domain.UserOrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}

func ToDomainUserOrganizations(ms []models.UserOrganization) []domain.UserOrganization {
	out := make([]domain.UserOrganization, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainUserOrganization(m))
	}
	return out
}
