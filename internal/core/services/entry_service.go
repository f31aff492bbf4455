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
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/accounting"
)

var (
	ErrUnbalanced       = errors.New("entry lines do not balance, debits must equal credits")
	ErrEntryMinLines    = errors.New("entry must have at least two lines")
	ErrInvalidAccount   = errors.New("account does not exist or is inactive")
	ErrPeriodClosed     = errors.New("fiscal period is closed")
	ErrDateOutOfPeriod  = errors.New("entry date does not fall in any fiscal period")
	ErrAlreadyPosted    = errors.New("entry is already posted")
	ErrAlreadyReversed  = errors.New("entry is already reversed")
	ErrNotPosted        = errors.New("entry must be posted for this operation")
	ErrNotDraft         = errors.New("entry must be a draft for this operation")
	ErrExchangeRate     = errors.New("exchange rate must be 1 for functional currency entries")
	ErrNarrativeMissing = errors.New("entry narrative is required")
)

const defaultListLimit = 50

// entryService provides core journal entry operations.
type entryService struct {
	entryRepo       portsrepo.EntryRepositoryWithTx
	periodRepo      portsrepo.PeriodRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	currencySvc     portssvc.CurrencySvcFacade
	organizationSvc portssvc.OrganizationSvcFacade
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx, periodRepo portsrepo.PeriodRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, organizationSvc portssvc.OrganizationSvcFacade) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		periodRepo:      periodRepo,
		accountRepo:     accountRepo,
		currencySvc:     currencySvc,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// resolvePeriod finds the period containing the date and verifies it accepts mutations.
func (s *entryService) resolvePeriod(ctx context.Context, organizationID string, date time.Time) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, organizationID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no period covers %s", ErrDateOutOfPeriod, date.Format("2006-01-02"))
		}
		return nil, err
	}
	if !period.AcceptsMutations() {
		return nil, fmt.Errorf("%w: period %d-%02d", ErrPeriodClosed, period.Year, period.Month)
	}
	return period, nil
}

// validateAccounts checks that every referenced account exists, is active, and
// that at least two distinct accounts are touched.
func (s *entryService) validateAccounts(ctx context.Context, organizationID string, lines []domain.EntryLine) error {
	codeSet := make(map[string]bool)
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if !codeSet[line.AccountCode] {
			codeSet[line.AccountCode] = true
			codes = append(codes, line.AccountCode)
		}
	}
	if len(codes) < 2 {
		return fmt.Errorf("%w: entry must touch at least two different accounts", apperrors.ErrValidation)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, organizationID, codes)
	if err != nil {
		return err
	}
	for _, code := range codes {
		account, ok := accounts[code]
		if !ok || !account.IsActive {
			return fmt.Errorf("%w: %s", ErrInvalidAccount, code)
		}
	}
	return nil
}

// normalizeExchangeRate applies the functional currency rule.
func normalizeExchangeRate(currencyCode string, rate decimal.Decimal) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	if currencyCode == domain.FunctionalCurrencyCode {
		if rate.IsZero() {
			return one, nil
		}
		if !rate.Equal(one) {
			return decimal.Zero, ErrExchangeRate
		}
		return one, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return rate, nil
}

// buildLines converts line requests into domain lines with fresh IDs.
func buildLines(entryID string, reqs []dto.CreateEntryLineRequest, userID string, now time.Time) []domain.EntryLine {
	lines := make([]domain.EntryLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.EntryLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			AccountCode:    r.AccountCode,
			Debit:          r.Debit,
			Credit:         r.Credit,
			Memo:           r.Memo,
			CounterpartyID: r.CounterpartyID,
			CostCenter:     r.CostCenter,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// CreateEntry creates a new balanced entry after validation, as a draft or,
// when the request asks for it, posted in one step.
// Implements portssvc.EntrySvcFacade
func (s *entryService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("authorization failed for CreateEntry", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID))
		return nil, err
	}

	if req.Narrative == "" {
		return nil, ErrNarrativeMissing
	}
	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}

	currency, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	rate, err := normalizeExchangeRate(req.CurrencyCode, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(ctx, organizationID, req.EntryDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, creatorUserID, now)

	if err := accounting.ValidateEntryBalance(lines, currency.DecimalPlaces); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, err.Error())
	}
	if err := s.validateAccounts(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	origin := req.Origin
	if origin == "" {
		origin = "MANUAL"
	}
	status := domain.Draft
	if req.Post {
		status = domain.Posted
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      req.EntryDate,
		Narrative:      req.Narrative,
		CurrencyCode:   req.CurrencyCode,
		ExchangeRate:   rate,
		Origin:         origin,
		Status:         status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("failed to save entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry.Lines = lines
	if req.Post {
		middleware.IncEntryPosted()
	}
	logger.Info("entry created", slog.String("entry_id", entryID), slog.String("organization_id", organizationID), slog.String("status", string(status)))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries with their lines.
func (s *entryService) ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByOrganization(ctx, organizationID, limit, params.NextToken, params.Status)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesByEntry, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	resp := dto.ToListEntriesResponse(entries, nextToken)
	return &resp, nil
}

// UpdateEntry edits a draft entry. Posted entries are immutable.
func (s *entryService) UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		if entry.Status == domain.Posted {
			return nil, ErrAlreadyPosted
		}
		return nil, ErrNotDraft
	}

	now := time.Now().UTC()
	if req.Narrative != nil {
		if *req.Narrative == "" {
			return nil, ErrNarrativeMissing
		}
		entry.Narrative = *req.Narrative
	}
	if req.CurrencyCode != nil {
		entry.CurrencyCode = *req.CurrencyCode
	}
	if req.ExchangeRate != nil {
		entry.ExchangeRate = *req.ExchangeRate
	}
	rate, err := normalizeExchangeRate(entry.CurrencyCode, entry.ExchangeRate)
	if err != nil {
		return nil, err
	}
	entry.ExchangeRate = rate

	if req.EntryDate != nil {
		period, err := s.resolvePeriod(ctx, organizationID, *req.EntryDate)
		if err != nil {
			return nil, err
		}
		entry.EntryDate = *req.EntryDate
		entry.PeriodID = period.PeriodID
	}

	currency, err := s.currencySvc.GetCurrencyByCode(ctx, entry.CurrencyCode)
	if err != nil {
		return nil, err
	}

	var lines []domain.EntryLine
	if req.Lines != nil {
		if len(req.Lines) < 2 {
			return nil, ErrEntryMinLines
		}
		lines = buildLines(entryID, req.Lines, requestingUserID, now)
	} else {
		lines, err = s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, err
		}
	}
	if err := accounting.ValidateEntryBalance(lines, currency.DecimalPlaces); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, err.Error())
	}
	if err := s.validateAccounts(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	var replacement []domain.EntryLine
	if req.Lines != nil {
		replacement = lines
	}
	if err := s.entryRepo.UpdateEntry(ctx, *entry, replacement); err != nil {
		return nil, err
	}

	entry.Lines = lines
	return entry, nil
}

// PostEntry transitions a draft to POSTED after re-validating its balance.
func (s *entryService) PostEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		if entry.Status == domain.Posted {
			return nil, ErrAlreadyPosted
		}
		return nil, ErrNotDraft
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.AcceptsMutations() {
		return nil, fmt.Errorf("%w: period %d-%02d", ErrPeriodClosed, period.Year, period.Month)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, entry.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(lines, currency.DecimalPlaces); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, err.Error())
	}

	now := time.Now().UTC()
	err = withLockRetry(ctx, func() error {
		return s.entryRepo.PostEntry(ctx, organizationID, entryID, entry.PeriodID, requestingUserID, now)
	})
	if err != nil {
		logger.Warn("failed to post entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID
	entry.Lines = lines
	middleware.IncEntryPosted()
	logger.Info("entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// ReverseEntry creates and posts a mirror-image reversal of a posted entry.
func (s *entryService) ReverseEntry(ctx context.Context, organizationID string, entryID string, req dto.ReverseEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed {
		return nil, ErrAlreadyReversed
	}
	if original.Status != domain.Posted {
		return nil, ErrNotPosted
	}

	reversalDate := original.EntryDate
	if req.ReversalDate != nil {
		reversalDate = *req.ReversalDate
	}
	period, err := s.resolvePeriod(ctx, organizationID, reversalDate)
	if err != nil {
		return nil, err
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	narrative := req.Narrative
	if narrative == "" {
		narrative = "Reversal of: " + original.Narrative
	}

	reversalLines := make([]domain.EntryLine, len(originalLines))
	for i, line := range originalLines {
		reversalLines[i] = domain.EntryLine{
			LineID:         uuid.NewString(),
			EntryID:        reversalID,
			AccountCode:    line.AccountCode,
			Debit:          line.Credit,
			Credit:         line.Debit,
			Memo:           line.Memo,
			CounterpartyID: line.CounterpartyID,
			CostCenter:     line.CostCenter,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		OrganizationID:  organizationID,
		PeriodID:        period.PeriodID,
		EntryDate:       reversalDate,
		Narrative:       narrative,
		CurrencyCode:    original.CurrencyCode,
		ExchangeRate:    original.ExchangeRate,
		Origin:          "REVERSAL",
		Status:          domain.Posted,
		ReversedEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	err = withLockRetry(ctx, func() error {
		return s.entryRepo.SaveReversal(ctx, reversal, reversalLines, original.EntryID)
	})
	if err != nil {
		logger.Warn("failed to save reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	reversal.Lines = reversalLines
	logger.Info("entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversalID))
	return &reversal, nil
}

// AdjustEntry opens a correction draft pre-populated with a posted entry's
// lines. The original stays POSTED and untouched; amounts are copied as-is,
// never flipped. The draft is then edited and posted like any other.
func (s *entryService) AdjustEntry(ctx context.Context, organizationID string, entryID string, req dto.AdjustEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, ErrNotPosted
	}

	entryDate := original.EntryDate
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	period, err := s.resolvePeriod(ctx, organizationID, entryDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	draftID := uuid.NewString()

	var lines []domain.EntryLine
	if len(req.Lines) > 0 {
		lines = buildLines(draftID, req.Lines, requestingUserID, now)
	} else {
		originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, err
		}
		lines = make([]domain.EntryLine, len(originalLines))
		for i, line := range originalLines {
			lines[i] = domain.EntryLine{
				LineID:         uuid.NewString(),
				EntryID:        draftID,
				AccountCode:    line.AccountCode,
				Debit:          line.Debit,
				Credit:         line.Credit,
				Memo:           line.Memo,
				CounterpartyID: line.CounterpartyID,
				CostCenter:     line.CostCenter,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     requestingUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: requestingUserID,
				},
			}
		}
	}

	currency, err := s.currencySvc.GetCurrencyByCode(ctx, original.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(lines, currency.DecimalPlaces); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, err.Error())
	}
	if err := s.validateAccounts(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	narrative := req.Narrative
	if narrative == "" {
		narrative = "Adjustment of: " + original.Narrative
	}

	draft := domain.JournalEntry{
		EntryID:        draftID,
		OrganizationID: organizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      entryDate,
		Narrative:      narrative,
		CurrencyCode:   original.CurrencyCode,
		ExchangeRate:   original.ExchangeRate,
		Origin:         "ADJUSTMENT",
		Status:         domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, draft, lines); err != nil {
		logger.Error("failed to save adjustment draft", slog.String("entry_id", draftID), slog.String("error", err.Error()))
		return nil, err
	}

	draft.Lines = lines
	logger.Info("adjustment draft created", slog.String("original_entry_id", entryID), slog.String("entry_id", draftID))
	return &draft, nil
}

// VoidEntry marks a posted entry VOIDED, keeping it on the record.
func (s *entryService) VoidEntry(ctx context.Context, organizationID string, entryID string, req dto.VoidEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, ErrNotPosted
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, organizationID, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.AcceptsMutations() {
		return nil, fmt.Errorf("%w: period %d-%02d", ErrPeriodClosed, period.Year, period.Month)
	}

	now := time.Now().UTC()
	if err := s.entryRepo.VoidEntry(ctx, organizationID, entryID, req.Reason, requestingUserID, now); err != nil {
		return nil, err
	}

	entry.Status = domain.Voided
	entry.VoidReason = &req.Reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// CancelEntry discards a draft entry.
func (s *entryService) CancelEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) error {
	if _, err := s.organizationSvc.AuthorizeUserForOrganization(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return ErrNotDraft
	}

	now := time.Now().UTC()
	return s.entryRepo.CancelEntry(ctx, organizationID, entryID, requestingUserID, now)
}
