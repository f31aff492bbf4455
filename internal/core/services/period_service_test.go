package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	mockOrgSvc      *MockOrganizationService
	service         portssvc.PeriodSvcFacade
	organizationID  string
	userID          string
	period          domain.Period
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockEntryRepo, suite.mockAccountRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.period = domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		Year:           2025,
		Month:          time.March,
		Status:         domain.PeriodOpen,
	}
}

func (suite *PeriodServiceTestSuite) expectAuthorized(ctx context.Context, role domain.UserOrganizationRole) {
	membership := &domain.UserOrganization{
		UserID:         suite.userID,
		OrganizationID: suite.organizationID,
		Role:           domain.RoleAdmin,
	}
	suite.mockOrgSvc.On("AuthorizeUserForOrganization", ctx, suite.userID, suite.organizationID, role).Return(membership, nil).Once()
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{Year: 2025, Month: 3}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.NotEmpty(period.PeriodID)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Equal(2025, period.Year)
	suite.Equal(time.March, period.Month)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Duplicate() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{Year: 2025, Month: 3}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreatePeriod(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// balancedLinesFor returns one debit and one credit line of 100 on the given codes.
func (suite *PeriodServiceTestSuite) balancedLinesFor(entryID string, debitCode string, creditCode string) []domain.EntryLine {
	return []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: debitCode, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: creditCode, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
}

func (suite *PeriodServiceTestSuite) activeAccounts(codes ...string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		out[code] = domain.Account{
			AccountID:      uuid.NewString(),
			OrganizationID: suite.organizationID,
			Code:           code,
			IsActive:       true,
		}
	}
	return out
}

func (suite *PeriodServiceTestSuite) TestValidateClose_ReportsDrafts() {
	ctx := context.Background()
	drafts := []domain.JournalEntry{
		{
			EntryID:   uuid.NewString(),
			Narrative: "Pending invoice",
			EntryDate: time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
			Status:    domain.Draft,
		},
	}
	lines := suite.balancedLinesFor(drafts[0].EntryID, "10.10", "70.10")

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return(drafts, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryIDs", ctx, []string{drafts[0].EntryID}).Return(map[string][]domain.EntryLine{drafts[0].EntryID: lines}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.organizationID, mock.Anything).Return(suite.activeAccounts("10.10", "70.10"), nil).Once()

	report, err := suite.service.ValidateClose(ctx, suite.organizationID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.False(report.Valid())
	suite.Require().Len(report.Issues, 1)
	suite.Equal("DRAFT_ENTRY", report.Issues[0].Code)
	suite.Equal(drafts[0].EntryID, report.Issues[0].EntryID)
}

func (suite *PeriodServiceTestSuite) TestValidateClose_ReportsInactiveAccount() {
	ctx := context.Background()
	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Narrative: "Posted on a retired account",
		EntryDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Status:    domain.Posted,
	}
	lines := suite.balancedLinesFor(entry.EntryID, "10.10", "70.10")
	accounts := suite.activeAccounts("10.10", "70.10")
	retired := accounts["70.10"]
	retired.IsActive = false
	accounts["70.10"] = retired

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return([]domain.JournalEntry{entry}, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).Return(map[string][]domain.EntryLine{entry.EntryID: lines}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.organizationID, mock.Anything).Return(accounts, nil).Once()

	report, err := suite.service.ValidateClose(ctx, suite.organizationID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.False(report.Valid())
	suite.Require().Len(report.Issues, 1)
	suite.Equal("INVALID_ACCOUNT", report.Issues[0].Code)
	suite.Equal(entry.EntryID, report.Issues[0].EntryID)
}

func (suite *PeriodServiceTestSuite) TestValidateClose_ReportsOutOfPeriodAndUnbalanced() {
	ctx := context.Background()
	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Narrative: "April slipped into March",
		EntryDate: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		Status:    domain.Posted,
	}
	lines := suite.balancedLinesFor(entry.EntryID, "10.10", "70.10")
	lines[1].Credit = decimal.NewFromInt(90)

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return([]domain.JournalEntry{entry}, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).Return(map[string][]domain.EntryLine{entry.EntryID: lines}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.organizationID, mock.Anything).Return(suite.activeAccounts("10.10", "70.10"), nil).Once()

	report, err := suite.service.ValidateClose(ctx, suite.organizationID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Issues, 2)
	codes := []string{report.Issues[0].Code, report.Issues[1].Code}
	suite.Contains(codes, "ENTRY_OUT_OF_PERIOD")
	suite.Contains(codes, "UNBALANCED_ENTRY")
}

func (suite *PeriodServiceTestSuite) TestValidateClose_WarningsDoNotBlock() {
	ctx := context.Background()
	voided := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Narrative: "Duplicate capture",
		EntryDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Status:    domain.Voided,
	}

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return([]domain.JournalEntry{voided}, nil).Once()

	report, err := suite.service.ValidateClose(ctx, suite.organizationID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.Valid())
	suite.Empty(report.Issues)
	warningCodes := make([]string, len(report.Warnings))
	for i, w := range report.Warnings {
		warningCodes[i] = w.Code
	}
	suite.Contains(warningCodes, "VOIDED_ENTRY")
	suite.Contains(warningCodes, "NO_POSTED_ENTRIES")
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	closedAt := time.Now().UTC()
	closed := suite.period
	closed.Status = domain.PeriodClosed
	closed.ClosedAt = &closedAt
	closed.ClosedBy = &suite.userID

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.organizationID, suite.period.PeriodID, suite.userID, mock.AnythingOfType("time.Time"), "month end").Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&closed, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ClosePeriodRequest{Reason: "month end"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, result.Status)
	suite.Require().NotNil(result.ClosedBy)
	suite.Equal(suite.userID, *result.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_BlockedByDrafts() {
	ctx := context.Background()
	drafts := []domain.JournalEntry{
		{
			EntryID:   uuid.NewString(),
			Narrative: "Still a draft",
			EntryDate: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			Status:    domain.Draft,
		},
	}
	lines := suite.balancedLinesFor(drafts[0].EntryID, "10.10", "70.10")

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return(drafts, nil).Once()
	suite.mockEntryRepo.On("FindLinesByEntryIDs", ctx, []string{drafts[0].EntryID}).Return(map[string][]domain.EntryLine{drafts[0].EntryID: lines}, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.organizationID, mock.Anything).Return(suite.activeAccounts("10.10", "70.10"), nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ClosePeriodRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrValidationFailed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&closed, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ClosePeriodRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotOpen)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_RetriesOnLockContention() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByPeriod", ctx, suite.organizationID, suite.period.PeriodID, (*domain.EntryStatus)(nil)).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.organizationID, suite.period.PeriodID, suite.userID, mock.AnythingOfType("time.Time"), "").Return(apperrors.ErrLockNotAvailable).Twice()
	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.organizationID, suite.period.PeriodID, suite.userID, mock.AnythingOfType("time.Time"), "").Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&closed, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ClosePeriodRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, result.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	closed := suite.period
	closed.Status = domain.PeriodClosed
	reopened := suite.period
	reopened.Status = domain.PeriodReopened

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&closed, nil).Once()
	suite.mockPeriodRepo.On("ReopenPeriod", ctx, suite.organizationID, suite.period.PeriodID, suite.userID, mock.AnythingOfType("time.Time"), "late invoice arrived").Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&reopened, nil).Once()

	result, err := suite.service.ReopenPeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ReopenPeriodRequest{Reason: "late invoice arrived"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodReopened, result.Status)
	suite.True(result.AcceptsMutations())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_ReasonRequired() {
	ctx := context.Background()
	suite.expectAuthorized(ctx, domain.RoleAdmin)

	_, err := suite.service.ReopenPeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ReopenPeriodRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReasonMissing)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ReopenPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_NotClosed() {
	ctx := context.Background()

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, suite.organizationID, suite.period.PeriodID, dto.ReopenPeriodRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotClosed)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
