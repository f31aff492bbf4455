package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/statements"
)

var (
	ErrAlreadyMatched    = errors.New("transaction or line is already matched")
	ErrNotMatched        = errors.New("match not found")
	ErrStatementMissing  = errors.New("no statement imported for this period")
	ErrAlreadyFinalized  = errors.New("reconciliation is already finalized for this period")
	ErrAccountMismatch   = errors.New("entry line account does not match the bank account's ledger account")
	ErrStatementHasMatch = errors.New("statement has confirmed matches and cannot be replaced")
	ErrStatementNoRows   = errors.New("statement must contain at least one transaction")
)

// MatcherConfig tunes the suggestion algorithm.
type MatcherConfig struct {
	// DateWindowDays bounds a HIGH confidence pairing around the bank date.
	DateWindowDays int
	// AmountTolerance bounds a LOW confidence near-amount pairing.
	AmountTolerance decimal.Decimal
}

// reconciliationService provides bank reconciliation operations.
type reconciliationService struct {
	reconRepo       portsrepo.ReconciliationRepositoryWithTx
	periodRepo      portsrepo.PeriodRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	entryRepo       portsrepo.EntryRepositoryFacade
	organizationSvc portssvc.OrganizationSvcFacade
	matcher         MatcherConfig
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryWithTx, periodRepo portsrepo.PeriodRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade, organizationSvc portssvc.OrganizationSvcFacade, matcher MatcherConfig) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconRepo:       reconRepo,
		periodRepo:      periodRepo,
		accountRepo:     accountRepo,
		entryRepo:       entryRepo,
		organizationSvc: organizationSvc,
		matcher:         matcher,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateBankAccount links a ledger account to a bank identity.
func (s *reconciliationService) CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.AccountCode)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccount, req.AccountCode)
	}

	now := time.Now().UTC()
	bankAccount := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		OrganizationID: organizationID,
		AccountCode:    req.AccountCode,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		CurrencyCode:   req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reconRepo.SaveBankAccount(ctx, bankAccount); err != nil {
		return nil, err
	}

	logger.Info("bank account created", slog.String("bank_account_id", bankAccount.BankAccountID), slog.String("account_code", req.AccountCode))
	return &bankAccount, nil
}

// GetBankAccountByID retrieves a specific bank account.
func (s *reconciliationService) GetBankAccountByID(ctx context.Context, organizationID string, bankAccountID string, requestingUserID string) (*domain.BankAccount, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
}

// ListBankAccounts retrieves all bank accounts of an organization.
func (s *reconciliationService) ListBankAccounts(ctx context.Context, organizationID string, requestingUserID string) ([]domain.BankAccount, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.reconRepo.ListBankAccountsByOrganization(ctx, organizationID)
}

// ImportStatement persists inline statement rows for a (bank account, period) pair.
// Re-importing replaces a previous statement as long as nothing is matched yet.
func (s *reconciliationService) ImportStatement(ctx context.Context, organizationID string, bankAccountID string, req dto.ImportStatementRequest, requestingUserID string) (*domain.BankStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	bankAccount, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if len(req.Transactions) == 0 {
		return nil, ErrStatementNoRows
	}

	now := time.Now().UTC()
	statementID := uuid.NewString()
	txns := make([]domain.BankTransaction, len(req.Transactions))
	for i, row := range req.Transactions {
		if !period.Contains(row.Date) {
			return nil, fmt.Errorf("%w: row %d dated %s is outside period %d-%02d", apperrors.ErrValidation, i+1, row.Date.Format("2006-01-02"), period.Year, period.Month)
		}
		txns[i] = domain.BankTransaction{
			TransactionID: uuid.NewString(),
			StatementID:   statementID,
			Seq:           i + 1,
			Date:          row.Date,
			Description:   row.Description,
			Reference:     row.Reference,
			Debit:         row.Debit,
			Credit:        row.Credit,
			Balance:       row.Balance,
		}
	}

	closingBalance := req.ClosingBalance
	if closingBalance.IsZero() {
		closingBalance = txns[len(txns)-1].Balance
	}

	// Replace a prior unmatched import for the same period.
	if prev, err := s.reconRepo.FindStatementByPeriod(ctx, bankAccountID, req.PeriodID); err == nil {
		matches, err := s.reconRepo.ListMatchesByStatement(ctx, prev.StatementID)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return nil, ErrStatementHasMatch
		}
		if err := s.reconRepo.DeleteStatement(ctx, prev.StatementID); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	statement := domain.BankStatement{
		StatementID:      statementID,
		BankAccountID:    bankAccount.BankAccountID,
		PeriodID:         req.PeriodID,
		ClosingBalance:   closingBalance,
		TransactionCount: len(txns),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.reconRepo.SaveStatement(ctx, statement, txns); err != nil {
		return nil, err
	}

	logger.Info("statement imported", slog.String("statement_id", statementID), slog.Int("rows", len(txns)))
	return &statement, nil
}

// ImportStatementXLSX parses an XLSX workbook and persists its rows.
func (s *reconciliationService) ImportStatementXLSX(ctx context.Context, organizationID string, bankAccountID string, periodID string, r io.Reader, requestingUserID string) (*domain.BankStatement, error) {
	txns, err := statements.ParseXLSX(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	rows := make([]dto.StatementLineRequest, len(txns))
	for i, t := range txns {
		rows[i] = dto.StatementLineRequest{
			Date:        t.Date,
			Description: t.Description,
			Reference:   t.Reference,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     t.Balance,
		}
	}
	return s.ImportStatement(ctx, organizationID, bankAccountID, dto.ImportStatementRequest{
		PeriodID:     periodID,
		Transactions: rows,
	}, requestingUserID)
}

// GetStatement retrieves a statement with its rows and their match flags.
func (s *reconciliationService) GetStatement(ctx context.Context, organizationID string, bankAccountID string, statementID string, requestingUserID string) (*dto.StatementResponse, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID); err != nil {
		return nil, err
	}

	statement, err := s.reconRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement.BankAccountID != bankAccountID {
		return nil, apperrors.NewNotFoundError("statement not found for this bank account")
	}

	txns, err := s.reconRepo.ListTransactionsByStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}
	matches, err := s.reconRepo.ListMatchesByStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}
	matchedIDs := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchedIDs[m.BankTransactionID] = true
	}

	resp := dto.ToStatementResponse(statement, txns, matchedIDs)
	return &resp, nil
}

// orientationMatches pairs a statement credit (money in at the bank) with a
// ledger debit on the linked account, and a statement debit with a ledger credit.
func orientationMatches(txn domain.BankTransaction, line domain.EntryLine) bool {
	if txn.IsCredit() {
		return line.IsDebit()
	}
	return !line.IsDebit()
}

// dayDistance returns the absolute whole-day distance between two dates.
func dayDistance(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// classify grades a candidate pairing, returning false when it does not qualify.
func (s *reconciliationService) classify(txn domain.BankTransaction, line domain.EntryLine) (domain.MatchConfidence, string, bool) {
	txnAmount := txn.Amount()
	lineAmount := line.Amount()

	if txnAmount.Equal(lineAmount) {
		if dayDistance(txn.Date, line.EntryDate) <= s.matcher.DateWindowDays {
			return domain.ConfidenceHigh, fmt.Sprintf("exact amount %s within %d day(s)", txnAmount.String(), s.matcher.DateWindowDays), true
		}
		return domain.ConfidenceMedium, fmt.Sprintf("exact amount %s in period", txnAmount.String()), true
	}
	if txnAmount.Sub(lineAmount).Abs().LessThanOrEqual(s.matcher.AmountTolerance) {
		return domain.ConfidenceLow, fmt.Sprintf("amount %s within tolerance of %s", lineAmount.String(), txnAmount.String()), true
	}
	return "", "", false
}

// SuggestMatches proposes pairings ranked by confidence without persisting
// anything. Every qualifying candidate is returned, so a line may show up
// under more than one transaction; ties break on closest date, then lowest
// line ID. Already-matched sides never appear.
func (s *reconciliationService) SuggestMatches(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) ([]domain.MatchSuggestion, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	bankAccount, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}
	statement, err := s.reconRepo.FindStatementByPeriod(ctx, bankAccountID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrStatementMissing
		}
		return nil, err
	}

	txns, err := s.reconRepo.ListTransactionsByStatement(ctx, statement.StatementID)
	if err != nil {
		return nil, err
	}
	matches, err := s.reconRepo.ListMatchesByStatement(ctx, statement.StatementID)
	if err != nil {
		return nil, err
	}
	matchedTxns := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchedTxns[m.BankTransactionID] = true
	}

	lines, err := s.reconRepo.ListUnmatchedPostedLines(ctx, organizationID, bankAccount.AccountCode, period.Start(), period.End())
	if err != nil {
		return nil, err
	}

	rank := map[domain.MatchConfidence]int{
		domain.ConfidenceHigh:   0,
		domain.ConfidenceMedium: 1,
		domain.ConfidenceLow:    2,
	}

	// A line may appear under several transactions; nothing is reserved
	// until a match is actually confirmed. The caller picks.
	suggestions := make([]domain.MatchSuggestion, 0, len(txns))
	for _, txn := range txns {
		if matchedTxns[txn.TransactionID] {
			continue
		}

		candidates := make([]domain.MatchSuggestion, 0, 4)
		for _, line := range lines {
			if !orientationMatches(txn, line) {
				continue
			}
			confidence, reason, ok := s.classify(txn, line)
			if !ok {
				continue
			}
			candidates = append(candidates, domain.MatchSuggestion{
				Transaction: txn,
				Line:        line,
				Confidence:  confidence,
				Reason:      reason,
			})
		}

		sort.Slice(candidates, func(i, j int) bool {
			if rank[candidates[i].Confidence] != rank[candidates[j].Confidence] {
				return rank[candidates[i].Confidence] < rank[candidates[j].Confidence]
			}
			di := dayDistance(txn.Date, candidates[i].Line.EntryDate)
			dj := dayDistance(txn.Date, candidates[j].Line.EntryDate)
			if di != dj {
				return di < dj
			}
			return candidates[i].Line.LineID < candidates[j].Line.LineID
		})

		suggestions = append(suggestions, candidates...)
	}

	return suggestions, nil
}

// ConfirmMatch persists a one-to-one pairing between a statement row and an entry line.
func (s *reconciliationService) ConfirmMatch(ctx context.Context, organizationID string, bankAccountID string, req dto.CreateMatchRequest, requestingUserID string) (*domain.Match, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	bankAccount, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, err
	}

	line, err := s.entryRepo.FindLineByID(ctx, organizationID, req.EntryLineID)
	if err != nil {
		return nil, err
	}
	if line.EntryStatus != domain.Posted {
		return nil, ErrNotPosted
	}
	if line.AccountCode != bankAccount.AccountCode {
		return nil, ErrAccountMismatch
	}

	match := domain.Match{
		MatchID:           uuid.NewString(),
		BankTransactionID: req.BankTransactionID,
		EntryLineID:       req.EntryLineID,
		Source:            domain.MatchManual,
		MatchedBy:         requestingUserID,
		MatchedAt:         time.Now().UTC(),
	}

	if err := s.reconRepo.SaveMatch(ctx, match); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrAlreadyMatched
		}
		return nil, err
	}

	middleware.IncMatchConfirmed()
	logger.Info("match confirmed", slog.String("match_id", match.MatchID), slog.String("bank_transaction_id", req.BankTransactionID), slog.String("entry_line_id", req.EntryLineID))
	return &match, nil
}

// BulkConfirmMatches persists several pairings in one call, reporting per-pair
// outcomes. Each pair is attempted independently so one conflict does not
// reject the rest of the batch.
func (s *reconciliationService) BulkConfirmMatches(ctx context.Context, organizationID string, bankAccountID string, req dto.BulkMatchRequest, requestingUserID string) (*dto.BulkMatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	resp := dto.BulkMatchResponse{
		Results: make([]dto.BulkMatchItemResult, 0, len(req.Matches)),
	}
	for _, pair := range req.Matches {
		result := dto.BulkMatchItemResult{
			BankTransactionID: pair.BankTransactionID,
			EntryLineID:       pair.EntryLineID,
		}
		match, err := s.ConfirmMatch(ctx, organizationID, bankAccountID, pair, requestingUserID)
		if err != nil {
			result.Error = err.Error()
			resp.Failed++
		} else {
			matchResp := dto.ToMatchResponse(match)
			result.Match = &matchResp
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}

	logger.Info("bulk match completed", slog.Int("succeeded", resp.Succeeded), slog.Int("failed", resp.Failed))
	return &resp, nil
}

// UnmatchByID removes a confirmed pairing, refusing once the period is finalized.
func (s *reconciliationService) UnmatchByID(ctx context.Context, organizationID string, bankAccountID string, matchID string, requestingUserID string) error {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID); err != nil {
		return err
	}

	match, err := s.reconRepo.FindMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrNotMatched
		}
		return err
	}

	statement, err := s.statementOfTransaction(ctx, match.BankTransactionID, bankAccountID)
	if err != nil {
		return err
	}
	if _, err := s.reconRepo.FindReconciliation(ctx, bankAccountID, statement.PeriodID); err == nil {
		return ErrAlreadyFinalized
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return s.reconRepo.DeleteMatch(ctx, matchID)
}

// statementOfTransaction finds the statement a bank transaction belongs to.
func (s *reconciliationService) statementOfTransaction(ctx context.Context, transactionID string, bankAccountID string) (*domain.BankStatement, error) {
	// Statements are per (bank account, period); scan the account's matches
	// back to their statement through the transaction's statement ID.
	// The repository keeps this lookup a single query.
	return s.reconRepo.FindStatementByTransaction(ctx, bankAccountID, transactionID)
}

// ListMatches retrieves the matches of the statement imported for the period.
func (s *reconciliationService) ListMatches(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) ([]domain.Match, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID); err != nil {
		return nil, err
	}
	statement, err := s.reconRepo.FindStatementByPeriod(ctx, bankAccountID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrStatementMissing
		}
		return nil, err
	}
	return s.reconRepo.ListMatchesByStatement(ctx, statement.StatementID)
}

// buildSummary computes the book versus bank position for a period.
func (s *reconciliationService) buildSummary(ctx context.Context, organizationID string, bankAccount *domain.BankAccount, period *domain.Period) (*domain.Reconciliation, error) {
	statement, err := s.reconRepo.FindStatementByPeriod(ctx, bankAccount.BankAccountID, period.PeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrStatementMissing
		}
		return nil, err
	}

	allLines, err := s.reconRepo.ListPostedLines(ctx, organizationID, bankAccount.AccountCode, period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	unmatchedLines, err := s.reconRepo.ListUnmatchedPostedLines(ctx, organizationID, bankAccount.AccountCode, period.Start(), period.End())
	if err != nil {
		return nil, err
	}

	bookBalance := decimal.Zero
	for _, line := range allLines {
		bookBalance = bookBalance.Add(line.Debit).Sub(line.Credit)
	}

	pendingDebits := decimal.Zero
	pendingCredits := decimal.Zero
	for _, line := range unmatchedLines {
		pendingDebits = pendingDebits.Add(line.Debit)
		pendingCredits = pendingCredits.Add(line.Credit)
	}

	txns, err := s.reconRepo.ListTransactionsByStatement(ctx, statement.StatementID)
	if err != nil {
		return nil, err
	}
	matches, err := s.reconRepo.ListMatchesByStatement(ctx, statement.StatementID)
	if err != nil {
		return nil, err
	}
	unmatchedTxns := len(txns) - len(matches)

	// Deposits in transit push the bank balance up; outstanding payments pull it down.
	reconciledBalance := statement.ClosingBalance.Add(pendingDebits).Sub(pendingCredits)

	return &domain.Reconciliation{
		BankAccountID:     bankAccount.BankAccountID,
		PeriodID:          period.PeriodID,
		BookBalance:       bookBalance,
		BankBalance:       statement.ClosingBalance,
		PendingDebits:     pendingDebits,
		PendingCredits:    pendingCredits,
		ReconciledBalance: reconciledBalance,
		Difference:        bookBalance.Sub(reconciledBalance),
		UnreconciledCount: unmatchedTxns + len(unmatchedLines),
	}, nil
}

// Summary computes the current book versus bank position.
func (s *reconciliationService) Summary(ctx context.Context, organizationID string, bankAccountID string, periodID string, requestingUserID string) (*domain.Reconciliation, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	bankAccount, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, organizationID, bankAccount, period)
}

// Finalize persists the reconciliation outcome for the period.
func (s *reconciliationService) Finalize(ctx context.Context, organizationID string, bankAccountID string, req dto.FinalizeReconciliationRequest, requestingUserID string) (*domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	bankAccount, err := s.reconRepo.FindBankAccountByID(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, req.PeriodID)
	if err != nil {
		return nil, err
	}

	if _, err := s.reconRepo.FindReconciliation(ctx, bankAccountID, req.PeriodID); err == nil {
		return nil, ErrAlreadyFinalized
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	summary, err := s.buildSummary(ctx, organizationID, bankAccount, period)
	if err != nil {
		return nil, err
	}

	// Caller-supplied pending amounts override the computed ones, and a
	// nonzero residual difference is accepted as declared.
	if req.PendingDebits != nil {
		summary.PendingDebits = *req.PendingDebits
	}
	if req.PendingCredits != nil {
		summary.PendingCredits = *req.PendingCredits
	}
	if req.PendingDebits != nil || req.PendingCredits != nil {
		summary.ReconciledBalance = summary.BankBalance.Add(summary.PendingDebits).Sub(summary.PendingCredits)
		summary.Difference = summary.BookBalance.Sub(summary.ReconciledBalance)
	}

	summary.ReconciliationID = uuid.NewString()
	summary.Notes = req.Notes
	summary.FinalizedBy = requestingUserID
	summary.FinalizedAt = time.Now().UTC()

	if err := s.reconRepo.SaveReconciliation(ctx, *summary); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrAlreadyFinalized
		}
		return nil, err
	}

	logger.Info("reconciliation finalized", slog.String("reconciliation_id", summary.ReconciliationID), slog.String("period_id", req.PeriodID))
	return summary, nil
}
