package mapping

import (
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
)

func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		Year:           d.Year,
		Month:          int(d.Month),
		Status:         models.PeriodStatus(d.Status),
		ClosedAt:       d.ClosedAt,
		ClosedBy:       d.ClosedBy,
		CloseReason:    d.CloseReason,
		ReopenedAt:     d.ReopenedAt,
		ReopenedBy:     d.ReopenedBy,
		ReopenReason:   d.ReopenReason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		Year:           m.Year,
		Month:          time.Month(m.Month),
		Status:         domain.PeriodStatus(m.Status),
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		CloseReason:    m.CloseReason,
		ReopenedAt:     m.ReopenedAt,
		ReopenedBy:     m.ReopenedBy,
		ReopenReason:   m.ReopenReason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPeriods(ms []models.Period) []domain.Period {
	out := make([]domain.Period, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainPeriod(m))
	}
	return out
}
