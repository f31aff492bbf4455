package mapping

import (
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		OrganizationID: d.OrganizationID,
		AccountCode:    d.AccountCode,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		CurrencyCode:   d.CurrencyCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		OrganizationID: m.OrganizationID,
		AccountCode:    m.AccountCode,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		CurrencyCode:   m.CurrencyCode,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBankAccounts(ms []models.BankAccount) []domain.BankAccount {
	out := make([]domain.BankAccount, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainBankAccount(m))
	}
	return out
}

func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:      d.StatementID,
		BankAccountID:    d.BankAccountID,
		PeriodID:         d.PeriodID,
		ClosingBalance:   d.ClosingBalance,
		TransactionCount: d.TransactionCount,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:      m.StatementID,
		BankAccountID:    m.BankAccountID,
		PeriodID:         m.PeriodID,
		ClosingBalance:   m.ClosingBalance,
		TransactionCount: m.TransactionCount,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID: d.TransactionID,
		StatementID:   d.StatementID,
		Seq:           d.Seq,
		Date:          d.Date,
		Description:   d.Description,
		Reference:     d.Reference,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Balance:       d.Balance,
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: m.TransactionID,
		StatementID:   m.StatementID,
		Seq:           m.Seq,
		Date:          m.Date,
		Description:   m.Description,
		Reference:     m.Reference,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Balance:       m.Balance,
	}
}

func ToDomainBankTransactions(ms []models.BankTransaction) []domain.BankTransaction {
	out := make([]domain.BankTransaction, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainBankTransaction(m))
	}
	return out
}

func ToModelMatch(d domain.Match) models.Match {
	return models.Match{
		MatchID:           d.MatchID,
		BankTransactionID: d.BankTransactionID,
		EntryLineID:       d.EntryLineID,
		Source:            string(d.Source),
		MatchedBy:         d.MatchedBy,
		MatchedAt:         d.MatchedAt,
	}
}

func ToDomainMatch(m models.Match) domain.Match {
	return domain.Match{
		MatchID:           m.MatchID,
		BankTransactionID: m.BankTransactionID,
		EntryLineID:       m.EntryLineID,
		Source:            domain.MatchSource(m.Source),
		MatchedBy:         m.MatchedBy,
		MatchedAt:         m.MatchedAt,
	}
}

func ToDomainMatches(ms []models.Match) []domain.Match {
	out := make([]domain.Match, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainMatch(m))
	}
	return out
}

func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	return models.Reconciliation{
		ReconciliationID:  d.ReconciliationID,
		BankAccountID:     d.BankAccountID,
		PeriodID:          d.PeriodID,
		BookBalance:       d.BookBalance,
		BankBalance:       d.BankBalance,
		PendingDebits:     d.PendingDebits,
		PendingCredits:    d.PendingCredits,
		ReconciledBalance: d.ReconciledBalance,
		Difference:        d.Difference,
		UnreconciledCount: d.UnreconciledCount,
		Notes:             d.Notes,
		FinalizedBy:       d.FinalizedBy,
		FinalizedAt:       d.FinalizedAt,
	}
}

func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	return domain.Reconciliation{
		ReconciliationID:  m.ReconciliationID,
		BankAccountID:     m.BankAccountID,
		PeriodID:          m.PeriodID,
		BookBalance:       m.BookBalance,
		BankBalance:       m.BankBalance,
		PendingDebits:     m.PendingDebits,
		PendingCredits:    m.PendingCredits,
		ReconciledBalance: m.ReconciledBalance,
		Difference:        m.Difference,
		UnreconciledCount: m.UnreconciledCount,
		Notes:             m.Notes,
		FinalizedBy:       m.FinalizedBy,
		FinalizedAt:       m.FinalizedAt,
	}
}
