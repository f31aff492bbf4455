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

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo   *MockReconciliationRepository
	mockPeriodRepo  *MockPeriodRepository
	mockAccountRepo *MockAccountRepository
	mockEntryRepo   *MockEntryRepository
	mockOrgSvc      *MockOrganizationService
	service         portssvc.ReconciliationSvcFacade
	organizationID  string
	userID          string
	period          domain.Period
	bankAccount     domain.BankAccount
	statement       domain.BankStatement
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewReconciliationService(
		suite.mockReconRepo,
		suite.mockPeriodRepo,
		suite.mockAccountRepo,
		suite.mockEntryRepo,
		suite.mockOrgSvc,
		services.MatcherConfig{
			DateWindowDays:  3,
			AmountTolerance: decimal.RequireFromString("0.50"),
		},
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.period = domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		Year:           2025,
		Month:          time.March,
		Status:         domain.PeriodOpen,
	}
	suite.bankAccount = domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountCode:    "10.41",
		BankName:       "BCP",
		AccountNumber:  "193-1234567-0-11",
		CurrencyCode:   "PEN",
	}
	suite.statement = domain.BankStatement{
		StatementID:      uuid.NewString(),
		BankAccountID:    suite.bankAccount.BankAccountID,
		PeriodID:         suite.period.PeriodID,
		ClosingBalance:   decimal.NewFromInt(500),
		TransactionCount: 2,
	}
}

func (suite *ReconciliationServiceTestSuite) expectAuthorized(ctx context.Context, role domain.UserOrganizationRole) {
	membership := &domain.UserOrganization{
		UserID:         suite.userID,
		OrganizationID: suite.organizationID,
		Role:           domain.RoleAdmin,
	}
	suite.mockOrgSvc.On("AuthorizeUserForOrganization", ctx, suite.userID, suite.organizationID, role).Return(membership, nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		AccountCode:   "10.41",
		BankName:      "BCP",
		AccountNumber: "193-1234567-0-11",
		CurrencyCode:  "PEN",
	}
	ledgerAccount := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "10.41",
		Nature:         domain.Asset,
		IsActive:       true,
	}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "10.41").Return(ledgerAccount, nil).Once()
	suite.mockReconRepo.On("SaveBankAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(nil).Once()

	bankAccount, err := suite.service.CreateBankAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(bankAccount.BankAccountID)
	suite.Equal("10.41", bankAccount.AccountCode)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreateBankAccount_InactiveLedgerAccount() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{AccountCode: "10.41", BankName: "BCP", AccountNumber: "1", CurrencyCode: "PEN"}
	inactive := &domain.Account{Code: "10.41", IsActive: false}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "10.41").Return(inactive, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAccount)
}

func (suite *ReconciliationServiceTestSuite) statementRows() []dto.StatementLineRequest {
	return []dto.StatementLineRequest{
		{
			Date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			Description: "Deposit",
			Credit:      decimal.NewFromInt(100),
			Balance:     decimal.NewFromInt(600),
		},
		{
			Date:        time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			Description: "Supplier payment",
			Debit:       decimal.NewFromInt(250),
			Balance:     decimal.NewFromInt(350),
		},
	}
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_Success() {
	ctx := context.Background()
	req := dto.ImportStatementRequest{
		PeriodID:     suite.period.PeriodID,
		Transactions: suite.statementRows(),
	}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReconRepo.On("SaveStatement", ctx, mock.AnythingOfType("domain.BankStatement"), mock.AnythingOfType("[]domain.BankTransaction")).Return(nil).Once()

	statement, err := suite.service.ImportStatement(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, statement.TransactionCount)
	// Closing balance falls back to the last row's running balance.
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(350)))
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_RowOutsidePeriod() {
	ctx := context.Background()
	rows := suite.statementRows()
	rows[1].Date = time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	req := dto.ImportStatementRequest{PeriodID: suite.period.PeriodID, Transactions: rows}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()

	_, err := suite.service.ImportStatement(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveStatement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_EmptyRows() {
	ctx := context.Background()
	req := dto.ImportStatementRequest{PeriodID: suite.period.PeriodID}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()

	_, err := suite.service.ImportStatement(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementNoRows)
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_ReplaceBlockedByMatches() {
	ctx := context.Background()
	req := dto.ImportStatementRequest{PeriodID: suite.period.PeriodID, Transactions: suite.statementRows()}
	existingMatch := domain.Match{MatchID: uuid.NewString()}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(&suite.statement, nil).Once()
	suite.mockReconRepo.On("ListMatchesByStatement", ctx, suite.statement.StatementID).Return([]domain.Match{existingMatch}, nil).Once()

	_, err := suite.service.ImportStatement(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementHasMatch)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "DeleteStatement", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_RanksByConfidence() {
	ctx := context.Background()

	depositTxn := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		StatementID:   suite.statement.StatementID,
		Seq:           1,
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Credit:        decimal.NewFromInt(100),
	}
	paymentTxn := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		StatementID:   suite.statement.StatementID,
		Seq:           2,
		Date:          time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		Debit:         decimal.RequireFromString("250.30"),
	}
	exactLine := domain.EntryLine{
		LineID:      uuid.NewString(),
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryDate:   time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
	}
	nearLine := domain.EntryLine{
		LineID:      uuid.NewString(),
		AccountCode: suite.bankAccount.AccountCode,
		Credit:      decimal.NewFromInt(250),
		EntryDate:   time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
	}

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(&suite.statement, nil).Once()
	suite.mockReconRepo.On("ListTransactionsByStatement", ctx, suite.statement.StatementID).Return([]domain.BankTransaction{depositTxn, paymentTxn}, nil).Once()
	suite.mockReconRepo.On("ListMatchesByStatement", ctx, suite.statement.StatementID).Return([]domain.Match{}, nil).Once()
	suite.mockReconRepo.On("ListUnmatchedPostedLines", ctx, suite.organizationID, suite.bankAccount.AccountCode, suite.period.Start(), suite.period.End()).Return([]domain.EntryLine{exactLine, nearLine}, nil).Once()

	suggestions, err := suite.service.SuggestMatches(ctx, suite.organizationID, suite.bankAccount.BankAccountID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(suggestions, 2)

	// Exact amount one day apart pairs with HIGH confidence.
	suite.Equal(depositTxn.TransactionID, suggestions[0].Transaction.TransactionID)
	suite.Equal(exactLine.LineID, suggestions[0].Line.LineID)
	suite.Equal(domain.ConfidenceHigh, suggestions[0].Confidence)

	// Amount within tolerance pairs with LOW confidence.
	suite.Equal(paymentTxn.TransactionID, suggestions[1].Transaction.TransactionID)
	suite.Equal(nearLine.LineID, suggestions[1].Line.LineID)
	suite.Equal(domain.ConfidenceLow, suggestions[1].Confidence)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_DeterministicOrderAndSharedLines() {
	ctx := context.Background()

	txnEarly := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		StatementID:   suite.statement.StatementID,
		Seq:           1,
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Credit:        decimal.NewFromInt(100),
	}
	txnLate := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		StatementID:   suite.statement.StatementID,
		Seq:           2,
		Date:          time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC),
		Credit:        decimal.NewFromInt(100),
	}
	// Fixed line IDs pin down the lowest-line-ID tie-break.
	lineLowID := domain.EntryLine{
		LineID:      "aaaaaaaa-0000-0000-0000-000000000001",
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
	}
	lineHighID := domain.EntryLine{
		LineID:      "bbbbbbbb-0000-0000-0000-000000000002",
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
	}
	lineFar := domain.EntryLine{
		LineID:      "cccccccc-0000-0000-0000-000000000003",
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryDate:   time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		EntryStatus: domain.Posted,
	}

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(&suite.statement, nil).Once()
	suite.mockReconRepo.On("ListTransactionsByStatement", ctx, suite.statement.StatementID).Return([]domain.BankTransaction{txnEarly, txnLate}, nil).Once()
	suite.mockReconRepo.On("ListMatchesByStatement", ctx, suite.statement.StatementID).Return([]domain.Match{}, nil).Once()
	suite.mockReconRepo.On("ListUnmatchedPostedLines", ctx, suite.organizationID, suite.bankAccount.AccountCode, suite.period.Start(), suite.period.End()).Return([]domain.EntryLine{lineFar, lineHighID, lineLowID}, nil).Once()

	suggestions, err := suite.service.SuggestMatches(ctx, suite.organizationID, suite.bankAccount.BankAccountID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	// Every qualifying pairing is reported, so each line shows up once per transaction.
	suite.Require().Len(suggestions, 6)

	// First transaction: same-day candidates beat the two-days-away one,
	// and equal distances fall back to the lowest line ID.
	suite.Equal(txnEarly.TransactionID, suggestions[0].Transaction.TransactionID)
	suite.Equal(lineLowID.LineID, suggestions[0].Line.LineID)
	suite.Equal(lineHighID.LineID, suggestions[1].Line.LineID)
	suite.Equal(lineFar.LineID, suggestions[2].Line.LineID)

	// Second transaction: all candidates sit one day away, so the order is
	// purely the line ID tie-break.
	suite.Equal(txnLate.TransactionID, suggestions[3].Transaction.TransactionID)
	suite.Equal(lineLowID.LineID, suggestions[3].Line.LineID)
	suite.Equal(lineHighID.LineID, suggestions[4].Line.LineID)
	suite.Equal(lineFar.LineID, suggestions[5].Line.LineID)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_NoStatement() {
	ctx := context.Background()

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SuggestMatches(ctx, suite.organizationID, suite.bankAccount.BankAccountID, suite.period.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementMissing)
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_Success() {
	ctx := context.Background()
	req := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	line := &domain.EntryLine{
		LineID:      req.EntryLineID,
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryStatus: domain.Posted,
	}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, req.EntryLineID).Return(line, nil).Once()
	suite.mockReconRepo.On("SaveMatch", ctx, mock.AnythingOfType("domain.Match")).Return(nil).Once()

	match, err := suite.service.ConfirmMatch(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.MatchManual, match.Source)
	suite.Equal(req.BankTransactionID, match.BankTransactionID)
	suite.Equal(suite.userID, match.MatchedBy)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestBulkConfirmMatches_PartialFailure() {
	ctx := context.Background()
	okPair := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	dupPair := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	okLine := &domain.EntryLine{
		LineID:      okPair.EntryLineID,
		AccountCode: suite.bankAccount.AccountCode,
		Debit:       decimal.NewFromInt(100),
		EntryStatus: domain.Posted,
	}
	dupLine := &domain.EntryLine{
		LineID:      dupPair.EntryLineID,
		AccountCode: suite.bankAccount.AccountCode,
		Credit:      decimal.NewFromInt(50),
		EntryStatus: domain.Posted,
	}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Twice()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, okPair.EntryLineID).Return(okLine, nil).Once()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, dupPair.EntryLineID).Return(dupLine, nil).Once()
	suite.mockReconRepo.On("SaveMatch", ctx, mock.MatchedBy(func(m domain.Match) bool {
		return m.EntryLineID == okPair.EntryLineID
	})).Return(nil).Once()
	suite.mockReconRepo.On("SaveMatch", ctx, mock.MatchedBy(func(m domain.Match) bool {
		return m.EntryLineID == dupPair.EntryLineID
	})).Return(apperrors.ErrDuplicate).Once()

	resp, err := suite.service.BulkConfirmMatches(ctx, suite.organizationID, suite.bankAccount.BankAccountID, dto.BulkMatchRequest{
		Matches: []dto.CreateMatchRequest{okPair, dupPair},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Succeeded)
	suite.Equal(1, resp.Failed)
	suite.Require().Len(resp.Results, 2)
	suite.Require().NotNil(resp.Results[0].Match)
	suite.Empty(resp.Results[0].Error)
	suite.Nil(resp.Results[1].Match)
	suite.Contains(resp.Results[1].Error, "already matched")
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_LineNotPosted() {
	ctx := context.Background()
	req := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	line := &domain.EntryLine{LineID: req.EntryLineID, AccountCode: suite.bankAccount.AccountCode, EntryStatus: domain.Draft}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, req.EntryLineID).Return(line, nil).Once()

	_, err := suite.service.ConfirmMatch(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_AccountMismatch() {
	ctx := context.Background()
	req := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	line := &domain.EntryLine{LineID: req.EntryLineID, AccountCode: "60.10", EntryStatus: domain.Posted}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, req.EntryLineID).Return(line, nil).Once()

	_, err := suite.service.ConfirmMatch(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountMismatch)
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_AlreadyMatched() {
	ctx := context.Background()
	req := dto.CreateMatchRequest{BankTransactionID: uuid.NewString(), EntryLineID: uuid.NewString()}
	line := &domain.EntryLine{LineID: req.EntryLineID, AccountCode: suite.bankAccount.AccountCode, EntryStatus: domain.Posted}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockEntryRepo.On("FindLineByID", ctx, suite.organizationID, req.EntryLineID).Return(line, nil).Once()
	suite.mockReconRepo.On("SaveMatch", ctx, mock.AnythingOfType("domain.Match")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.ConfirmMatch(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyMatched)
}

func (suite *ReconciliationServiceTestSuite) TestUnmatch_AfterFinalizeRejected() {
	ctx := context.Background()
	match := &domain.Match{MatchID: uuid.NewString(), BankTransactionID: uuid.NewString()}

	suite.expectAuthorized(ctx, domain.RoleMember)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockReconRepo.On("FindMatchByID", ctx, match.MatchID).Return(match, nil).Once()
	suite.mockReconRepo.On("FindStatementByTransaction", ctx, suite.bankAccount.BankAccountID, match.BankTransactionID).Return(&suite.statement, nil).Once()
	suite.mockReconRepo.On("FindReconciliation", ctx, suite.bankAccount.BankAccountID, suite.statement.PeriodID).Return(&domain.Reconciliation{}, nil).Once()

	err := suite.service.UnmatchByID(ctx, suite.organizationID, suite.bankAccount.BankAccountID, match.MatchID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyFinalized)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "DeleteMatch", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) expectSummaryQueries(ctx context.Context, allLines, unmatchedLines []domain.EntryLine, txns []domain.BankTransaction, matches []domain.Match) {
	suite.mockReconRepo.On("FindStatementByPeriod", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(&suite.statement, nil).Once()
	suite.mockReconRepo.On("ListPostedLines", ctx, suite.organizationID, suite.bankAccount.AccountCode, suite.period.Start(), suite.period.End()).Return(allLines, nil).Once()
	suite.mockReconRepo.On("ListUnmatchedPostedLines", ctx, suite.organizationID, suite.bankAccount.AccountCode, suite.period.Start(), suite.period.End()).Return(unmatchedLines, nil).Once()
	suite.mockReconRepo.On("ListTransactionsByStatement", ctx, suite.statement.StatementID).Return(txns, nil).Once()
	suite.mockReconRepo.On("ListMatchesByStatement", ctx, suite.statement.StatementID).Return(matches, nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestSummary_ComputesPosition() {
	ctx := context.Background()
	allLines := []domain.EntryLine{
		{LineID: uuid.NewString(), Debit: decimal.NewFromInt(600), Credit: decimal.Zero},
		{LineID: uuid.NewString(), Debit: decimal.Zero, Credit: decimal.NewFromInt(70)},
	}
	unmatchedLines := []domain.EntryLine{
		{LineID: allLines[1].LineID, Debit: decimal.Zero, Credit: decimal.NewFromInt(70)},
	}
	txns := []domain.BankTransaction{
		{TransactionID: uuid.NewString()},
		{TransactionID: uuid.NewString()},
	}
	matches := []domain.Match{{MatchID: uuid.NewString()}}

	suite.expectAuthorized(ctx, domain.RoleReadOnly)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.expectSummaryQueries(ctx, allLines, unmatchedLines, txns, matches)

	summary, err := suite.service.Summary(ctx, suite.organizationID, suite.bankAccount.BankAccountID, suite.period.PeriodID, suite.userID)

	suite.Require().NoError(err)
	// Book balance: 600 debits - 70 credits = 530.
	suite.True(summary.BookBalance.Equal(decimal.NewFromInt(530)))
	suite.True(summary.BankBalance.Equal(decimal.NewFromInt(500)))
	suite.True(summary.PendingCredits.Equal(decimal.NewFromInt(70)))
	suite.True(summary.PendingDebits.Equal(decimal.Zero))
	// Reconciled bank balance: 500 - 70 = 430; difference: 530 - 430 = 100.
	suite.True(summary.ReconciledBalance.Equal(decimal.NewFromInt(430)))
	suite.True(summary.Difference.Equal(decimal.NewFromInt(100)))
	// One unmatched transaction plus one unmatched line.
	suite.Equal(2, summary.UnreconciledCount)
}

func (suite *ReconciliationServiceTestSuite) TestFinalize_Success() {
	ctx := context.Background()
	req := dto.FinalizeReconciliationRequest{PeriodID: suite.period.PeriodID, Notes: "March close"}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindReconciliation", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectSummaryQueries(ctx, []domain.EntryLine{}, []domain.EntryLine{}, []domain.BankTransaction{}, []domain.Match{})
	suite.mockReconRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.Reconciliation")).Return(nil).Once()

	recon, err := suite.service.Finalize(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(recon.ReconciliationID)
	suite.Equal("March close", recon.Notes)
	suite.Equal(suite.userID, recon.FinalizedBy)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestFinalize_CallerSuppliedPendingAmounts() {
	ctx := context.Background()
	pendingDebits := decimal.NewFromInt(20)
	pendingCredits := decimal.NewFromInt(100)
	req := dto.FinalizeReconciliationRequest{
		PeriodID:       suite.period.PeriodID,
		PendingDebits:  &pendingDebits,
		PendingCredits: &pendingCredits,
		Notes:          "outstanding cheques accepted",
	}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindReconciliation", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectSummaryQueries(ctx, []domain.EntryLine{}, []domain.EntryLine{}, []domain.BankTransaction{}, []domain.Match{})
	suite.mockReconRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
		return r.PendingDebits.Equal(pendingDebits) && r.PendingCredits.Equal(pendingCredits)
	})).Return(nil).Once()

	recon, err := suite.service.Finalize(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(recon.PendingDebits.Equal(pendingDebits))
	suite.True(recon.PendingCredits.Equal(pendingCredits))
	// Reconciled bank balance recomputes from the supplied amounts: 500 + 20 - 100 = 420.
	suite.True(recon.ReconciledBalance.Equal(decimal.NewFromInt(420)))
	// The residual difference is persisted as declared: 0 - 420 = -420.
	suite.True(recon.Difference.Equal(decimal.NewFromInt(-420)))
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestFinalize_AlreadyFinalized() {
	ctx := context.Background()
	req := dto.FinalizeReconciliationRequest{PeriodID: suite.period.PeriodID}

	suite.expectAuthorized(ctx, domain.RoleAdmin)
	suite.mockReconRepo.On("FindBankAccountByID", ctx, suite.organizationID, suite.bankAccount.BankAccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.organizationID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReconRepo.On("FindReconciliation", ctx, suite.bankAccount.BankAccountID, suite.period.PeriodID).Return(&domain.Reconciliation{}, nil).Once()

	_, err := suite.service.Finalize(ctx, suite.organizationID, suite.bankAccount.BankAccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyFinalized)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
