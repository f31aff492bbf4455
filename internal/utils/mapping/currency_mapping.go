package mapping

import (
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
)

func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCurrencies(ms []models.Currency) []domain.Currency {
	out := make([]domain.Currency, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainCurrency(m))
	}
	return out
}
