package mapping

import (
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
)

func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		PeriodID:        d.PeriodID,
		EntryDate:       d.EntryDate,
		Narrative:       d.Narrative,
		CurrencyCode:    d.CurrencyCode,
		ExchangeRate:    d.ExchangeRate,
		Origin:          d.Origin,
		Status:          models.EntryStatus(d.Status),
		ReversedEntryID: d.ReversedEntryID,
		ReversalEntryID: d.ReversalEntryID,
		VoidReason:      d.VoidReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		PeriodID:        m.PeriodID,
		EntryDate:       m.EntryDate,
		Narrative:       m.Narrative,
		CurrencyCode:    m.CurrencyCode,
		ExchangeRate:    m.ExchangeRate,
		Origin:          m.Origin,
		Status:          domain.EntryStatus(m.Status),
		ReversedEntryID: m.ReversedEntryID,
		ReversalEntryID: m.ReversalEntryID,
		VoidReason:      m.VoidReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		AccountCode:    d.AccountCode,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Memo:           d.Memo,
		CounterpartyID: d.CounterpartyID,
		CostCenter:     d.CostCenter,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		AccountCode:    m.AccountCode,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Memo:           m.Memo,
		CounterpartyID: m.CounterpartyID,
		CostCenter:     m.CostCenter,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		EntryDate:      m.EntryDate,
		EntryNarrative: m.EntryNarrative,
		EntryStatus:    domain.EntryStatus(m.EntryStatus),
	}
}

func ToDomainEntryLines(ms []models.EntryLine) []domain.EntryLine {
	out := make([]domain.EntryLine, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainEntryLine(m))
	}
	return out
}
