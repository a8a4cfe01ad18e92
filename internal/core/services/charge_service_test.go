package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
	"github.com/corebanking/ledger-engine/internal/core/services"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansDue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyCharge(ctx context.Context, loanID string, chargeTxn domain.Transaction, lastChargeAt, nextChargeAt time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, loanID, chargeTxn, lastChargeAt, nextChargeAt, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLoanRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock TransactionSvc ---
type MockTransactionSvc struct {
	mock.Mock
}

func (m *MockTransactionSvc) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) ProcessTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, transactionID, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionSvc) RefundTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, transactionID, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionSvc) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, accountNumber, amount, description, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionSvc) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, accountNumber, amount, description, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionSvc) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionSvc) ListTransactionsByAccount(ctx context.Context, accountNumber int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite ---
type ChargeServiceTestSuite struct {
	suite.Suite
	mockLoanRepo    *MockLoanRepository
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockTxnSvc      *MockTransactionSvc
	service         portssvc.ChargeSvcFacade
}

func (suite *ChargeServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnSvc = new(MockTransactionSvc)
	suite.service = services.NewChargeService(suite.mockLoanRepo, suite.mockTxnRepo, suite.mockAccountRepo, suite.mockTxnSvc)
}

// --- OpenLoan ---

func (suite *ChargeServiceTestSuite) TestOpenLoan_DisbursesPrincipal() {
	ctx := context.Background()
	principal := decimal.NewFromInt(5000)
	req := dto.OpenLoanRequest{
		AccountNumber: 1001,
		Principal:     principal,
		Percent:       decimal.NewFromInt(5),
		StrategyType:  domain.MonthlyCharge,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, int64(1001)).
		Return(&domain.Account{AccountNumber: 1001}, nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		oneMonth := l.LastChargeAt.AddDate(0, 1, 0)
		return l.AccountNumber == req.AccountNumber && l.Principal.Equal(principal) &&
			l.StrategyType == domain.MonthlyCharge && l.NextChargeAt.Equal(oneMonth)
	})).Return(nil).Once()
	suite.mockTxnSvc.On("Deposit", ctx, int64(1001), principal, mock.AnythingOfType("string"), "creator").
		Return(domain.Completed, nil).Once()

	loan, err := suite.service.OpenLoan(ctx, req, "creator")

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.NotEmpty(loan.LoanID)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestOpenLoan_NonPositivePrincipal() {
	ctx := context.Background()
	req := dto.OpenLoanRequest{
		AccountNumber: 1001,
		Principal:     decimal.Zero,
		StrategyType:  domain.DailyCharge,
	}

	loan, err := suite.service.OpenLoan(ctx, req, "creator")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan")
}

func (suite *ChargeServiceTestSuite) TestOpenLoan_UnknownStrategy() {
	ctx := context.Background()
	req := dto.OpenLoanRequest{
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(1000),
		StrategyType:  domain.ChargeStrategyType("WEEKLY"),
	}

	loan, err := suite.service.OpenLoan(ctx, req, "creator")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrUnknownStrategy)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan")
}

func (suite *ChargeServiceTestSuite) TestOpenLoan_UnknownAccount() {
	ctx := context.Background()
	req := dto.OpenLoanRequest{
		AccountNumber: 9999,
		Principal:     decimal.NewFromInt(1000),
		StrategyType:  domain.DailyCharge,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, int64(9999)).
		Return(nil, apperrors.ErrNotFound).Once()

	loan, err := suite.service.OpenLoan(ctx, req, "creator")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan")
}

// --- ApplyCharge ---

func (suite *ChargeServiceTestSuite) TestApplyCharge_MonthlyAmount() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:        loanID,
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(5000),
		Percent:       decimal.NewFromInt(5),
		StrategyType:  domain.MonthlyCharge,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, loanID, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Type == domain.Charge &&
			t.Amount.Equal(decimal.RequireFromString("437.5")) &&
			*t.SourceAccount == loan.AccountNumber && t.TargetAccount == nil
	}), mock.AnythingOfType("time.Time"), mock.MatchedBy(func(next time.Time) bool {
		return next.After(time.Now())
	}), "scheduler", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ApplyCharge(ctx, loanID, "scheduler")

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestApplyCharge_DailyAmount() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:        loanID,
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(1000),
		Percent:       decimal.NewFromInt(10),
		StrategyType:  domain.DailyCharge,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, loanID, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Amount.Equal(decimal.RequireFromString("3.01"))
	}), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "scheduler", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.ApplyCharge(ctx, loanID, "scheduler")

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestApplyCharge_InsufficientFundsRecordsFailure() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:        loanID,
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(5000),
		Percent:       decimal.NewFromInt(5),
		StrategyType:  domain.MonthlyCharge,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, loanID, mock.Anything, mock.Anything, mock.Anything, "scheduler", mock.Anything).
		Return(apperrors.ErrInsufficientFunds).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Type == domain.Charge && t.Status == domain.Failed &&
			t.Amount.Equal(decimal.RequireFromString("437.5"))
	})).Return(nil).Once()

	err := suite.service.ApplyCharge(ctx, loanID, "scheduler")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestApplyCharge_NotDueRejectedOnce() {
	ctx := context.Background()
	loanID := uuid.NewString()
	loan := &domain.Loan{
		LoanID:        loanID,
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(5000),
		Percent:       decimal.NewFromInt(5),
		StrategyType:  domain.MonthlyCharge,
		NextChargeAt:  time.Now().UTC().AddDate(0, 1, 0),
	}

	// A concurrent run already charged this period and advanced the
	// schedule; the unit's dueness re-check rejects the second attempt. The
	// rejection is not an insufficient-funds failure, so no FAILED charge
	// row is recorded.
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, loanID, mock.Anything, mock.Anything, mock.Anything, "scheduler", mock.Anything).
		Return(apperrors.ErrAlreadyProcessed).Once()

	err := suite.service.ApplyCharge(ctx, loanID, "scheduler")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestApplyCharge_LoanNotFound() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ApplyCharge(ctx, loanID, "scheduler")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ApplyCharge")
}

// --- ApplyDueCharges ---

func (suite *ChargeServiceTestSuite) TestApplyDueCharges_CountsFailures() {
	ctx := context.Background()
	asOf := time.Now().UTC()
	healthy := domain.Loan{
		LoanID:        uuid.NewString(),
		AccountNumber: 1001,
		Principal:     decimal.NewFromInt(1000),
		Percent:       decimal.NewFromInt(10),
		StrategyType:  domain.DailyCharge,
	}
	broke := domain.Loan{
		LoanID:        uuid.NewString(),
		AccountNumber: 2002,
		Principal:     decimal.NewFromInt(1000),
		Percent:       decimal.NewFromInt(10),
		StrategyType:  domain.DailyCharge,
	}

	suite.mockLoanRepo.On("ListLoansDue", ctx, asOf).Return([]domain.Loan{healthy, broke}, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, healthy.LoanID).Return(&healthy, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, broke.LoanID).Return(&broke, nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, healthy.LoanID, mock.Anything, mock.Anything, mock.Anything, "scheduler", mock.Anything).
		Return(nil).Once()
	suite.mockLoanRepo.On("ApplyCharge", ctx, broke.LoanID, mock.Anything, mock.Anything, mock.Anything, "scheduler", mock.Anything).
		Return(apperrors.ErrInsufficientFunds).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	result, err := suite.service.ApplyDueCharges(ctx, asOf, "scheduler")

	suite.Require().NoError(err)
	suite.Equal(1, result.Applied)
	suite.Equal(1, result.Failed)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ChargeServiceTestSuite) TestApplyDueCharges_Empty() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockLoanRepo.On("ListLoansDue", ctx, asOf).Return([]domain.Loan{}, nil).Once()

	result, err := suite.service.ApplyDueCharges(ctx, asOf, "scheduler")

	suite.Require().NoError(err)
	suite.Zero(result.Applied)
	suite.Zero(result.Failed)
}

// --- Run Suite ---
func TestChargeService(t *testing.T) {
	suite.Run(t, new(ChargeServiceTestSuite))
}
