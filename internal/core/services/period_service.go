package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
)

var (
	ErrNotClosed        = errors.New("period must be closed for this operation")
	ErrNotOpen          = errors.New("period does not accept mutations")
	ErrValidationFailed = errors.New("period close validation failed")
	ErrReasonMissing    = errors.New("a reason is required to reopen a period")
)

// periodService provides fiscal period lifecycle operations.
type periodService struct {
	periodRepo      portsrepo.PeriodRepositoryWithTx
	entryRepo       portsrepo.EntryRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	organizationSvc portssvc.OrganizationSvcFacade
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryWithTx, entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, organizationSvc portssvc.OrganizationSvcFacade) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:      periodRepo,
		entryRepo:       entryRepo,
		accountRepo:     accountRepo,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new fiscal period for a calendar month.
func (s *periodService) CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: organizationID,
		Year:           req.Year,
		Month:          time.Month(req.Month),
		Status:         domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: period %d-%02d already exists", apperrors.ErrDuplicate, req.Year, req.Month)
		}
		return nil, err
	}

	logger.Info("period created", slog.String("period_id", period.PeriodID), slog.Int("year", req.Year), slog.Int("month", req.Month))
	return &period, nil
}

// GetPeriodByID retrieves a specific period.
func (s *periodService) GetPeriodByID(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.Period, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
}

// ListPeriods retrieves all periods of an organization, newest first.
func (s *periodService) ListPeriods(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Period, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.periodRepo.ListPeriodsByOrganization(ctx, organizationID)
}

// collectCloseReport scans every entry in the period and sorts findings into
// blocking issues and advisory warnings. Cancelled entries are skipped; voided
// entries only warn. The scan is read-only.
func (s *periodService) collectCloseReport(ctx context.Context, organizationID string, period *domain.Period) (*domain.CloseReport, error) {
	entries, err := s.entryRepo.ListEntriesByPeriod(ctx, organizationID, period.PeriodID, nil)
	if err != nil {
		return nil, err
	}

	report := &domain.CloseReport{
		Issues:   []domain.CloseIssue{},
		Warnings: []domain.CloseIssue{},
	}

	inspect := make([]domain.JournalEntry, 0, len(entries))
	postedCount := 0
	for _, e := range entries {
		switch e.Status {
		case domain.Cancelled:
			continue
		case domain.Voided:
			report.Warnings = append(report.Warnings, domain.CloseIssue{
				Code:    "VOIDED_ENTRY",
				Message: fmt.Sprintf("voided entry %q dated %s remains on the record", e.Narrative, e.EntryDate.Format("2006-01-02")),
				EntryID: e.EntryID,
			})
			continue
		case domain.Posted:
			postedCount++
		}
		inspect = append(inspect, e)
	}

	entryIDs := make([]string, len(inspect))
	for i, e := range inspect {
		entryIDs[i] = e.EntryID
	}
	linesByEntry := map[string][]domain.EntryLine{}
	accounts := map[string]domain.Account{}
	if len(entryIDs) > 0 {
		linesByEntry, err = s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, err
		}
		codeSet := make(map[string]bool)
		codes := []string{}
		for _, lines := range linesByEntry {
			for _, line := range lines {
				if !codeSet[line.AccountCode] {
					codeSet[line.AccountCode] = true
					codes = append(codes, line.AccountCode)
				}
			}
		}
		if len(codes) > 0 {
			accounts, err = s.accountRepo.FindAccountsByCodes(ctx, organizationID, codes)
			if err != nil {
				return nil, err
			}
		}
	}

	for _, e := range inspect {
		if e.Status == domain.Draft {
			report.Issues = append(report.Issues, domain.CloseIssue{
				Code:    "DRAFT_ENTRY",
				Message: fmt.Sprintf("draft entry %q dated %s must be posted or cancelled", e.Narrative, e.EntryDate.Format("2006-01-02")),
				EntryID: e.EntryID,
			})
		}

		if !period.Contains(e.EntryDate) {
			report.Issues = append(report.Issues, domain.CloseIssue{
				Code:    "ENTRY_OUT_OF_PERIOD",
				Message: fmt.Sprintf("entry %q is dated %s, outside period %d-%02d", e.Narrative, e.EntryDate.Format("2006-01-02"), period.Year, period.Month),
				EntryID: e.EntryID,
			})
		}

		lines := linesByEntry[e.EntryID]
		debits := decimal.Zero
		credits := decimal.Zero
		for _, line := range lines {
			debits = debits.Add(line.Debit)
			credits = credits.Add(line.Credit)
			account, ok := accounts[line.AccountCode]
			if !ok || !account.IsActive {
				report.Issues = append(report.Issues, domain.CloseIssue{
					Code:    "INVALID_ACCOUNT",
					Message: fmt.Sprintf("entry %q references inactive or missing account %s", e.Narrative, line.AccountCode),
					EntryID: e.EntryID,
				})
			}
		}
		if !debits.Equal(credits) {
			report.Issues = append(report.Issues, domain.CloseIssue{
				Code:    "UNBALANCED_ENTRY",
				Message: fmt.Sprintf("entry %q debits %s do not equal credits %s", e.Narrative, debits.String(), credits.String()),
				EntryID: e.EntryID,
			})
		}
	}

	if postedCount == 0 {
		report.Warnings = append(report.Warnings, domain.CloseIssue{
			Code:    "NO_POSTED_ENTRIES",
			Message: fmt.Sprintf("period %d-%02d has no posted entries", period.Year, period.Month),
		})
	}

	return report, nil
}

// ValidateClose runs the pre-close checks without changing anything.
func (s *periodService) ValidateClose(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.CloseReport, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}
	return s.collectCloseReport(ctx, organizationID, period)
}

// ClosePeriod validates and closes an open or reopened period.
// The repository re-runs the draft check inside the closing transaction,
// so a draft slipping in between validation and close still fails it.
func (s *periodService) ClosePeriod(ctx context.Context, organizationID string, periodID string, req dto.ClosePeriodRequest, requestingUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}
	if !period.AcceptsMutations() {
		return nil, fmt.Errorf("%w: period %d-%02d is already closed", ErrNotOpen, period.Year, period.Month)
	}

	report, err := s.collectCloseReport(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	if !report.Valid() {
		return nil, fmt.Errorf("%w: %d blocking issue(s)", ErrValidationFailed, len(report.Issues))
	}

	now := time.Now().UTC()
	err = withLockRetry(ctx, func() error {
		return s.periodRepo.ClosePeriod(ctx, organizationID, periodID, requestingUserID, now, req.Reason)
	})
	if err != nil {
		logger.Warn("failed to close period", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return nil, err
	}

	middleware.IncPeriodClosed()
	logger.Info("period closed", slog.String("period_id", periodID), slog.String("closed_by", requestingUserID))
	return s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
}

// ReopenPeriod reopens a closed period with a mandatory reason.
func (s *periodService) ReopenPeriod(ctx context.Context, organizationID string, periodID string, req dto.ReopenPeriodRequest, requestingUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if req.Reason == "" {
		return nil, ErrReasonMissing
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %d-%02d has status %s", ErrNotClosed, period.Year, period.Month, period.Status)
	}

	now := time.Now().UTC()
	err = withLockRetry(ctx, func() error {
		return s.periodRepo.ReopenPeriod(ctx, organizationID, periodID, requestingUserID, now, req.Reason)
	})
	if err != nil {
		logger.Warn("failed to reopen period", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("period reopened", slog.String("period_id", periodID), slog.String("reopened_by", requestingUserID))
	return s.periodRepo.FindPeriodByID(ctx, organizationID, periodID)
}
