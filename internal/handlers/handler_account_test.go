package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/corebanking/ledger-engine/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Debit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, amount, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) Credit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, amount, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ProcessTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, transactionID, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionService) RefundTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, transactionID, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, accountNumber, amount, description, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	args := m.Called(ctx, accountNumber, amount, description, userID)
	return args.Get(0).(domain.TransactionStatus), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, accountNumber int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ChargeService ---
type MockChargeService struct {
	mock.Mock
}

func (m *MockChargeService) OpenLoan(ctx context.Context, req dto.OpenLoanRequest, creatorUserID string) (*domain.Loan, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockChargeService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockChargeService) ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockChargeService) ApplyCharge(ctx context.Context, loanID string, userID string) error {
	args := m.Called(ctx, loanID, userID)
	return args.Error(0)
}

func (m *MockChargeService) ApplyDueCharges(ctx context.Context, asOf time.Time, userID string) (dto.ChargeRunResponse, error) {
	args := m.Called(ctx, asOf, userID)
	return args.Get(0).(dto.ChargeRunResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ChargeSvcFacade = (*MockChargeService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAccount *MockAccountService
	mockTxn     *MockTransactionService
	mockCharge  *MockChargeService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())
	suite.router = gin.New()

	suite.mockAccount = new(MockAccountService)
	suite.mockTxn = new(MockTransactionService)
	suite.mockCharge = new(MockChargeService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccount, suite.mockTxn, suite.mockCharge)
}

func (suite *AccountHandlerTestSuite) serveJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestOpenAccount_Success() {
	reqBody := dto.OpenAccountRequest{AccountNumber: 1001, UserID: "user-1"}
	created := &domain.Account{
		AccountNumber: 1001,
		UserID:        "user-1",
		Balance:       decimal.Zero,
		AuditFields:   domain.AuditFields{CreatedAt: time.Now().UTC()},
	}

	suite.mockAccount.On("OpenAccount", mock.Anything, reqBody, "api").Return(created, nil).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1001), resp.AccountNumber)
	suite.True(resp.Balance.IsZero())
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestOpenAccount_Duplicate() {
	reqBody := dto.OpenAccountRequest{AccountNumber: 1001, UserID: "user-1"}

	suite.mockAccount.On("OpenAccount", mock.Anything, reqBody, "api").
		Return(nil, fmt.Errorf("%w: account 1001 already exists", apperrors.ErrDuplicate)).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	account := &domain.Account{AccountNumber: 1001, UserID: "user-1", Balance: decimal.RequireFromString("500.25")}

	suite.mockAccount.On("GetAccount", mock.Anything, int64(1001)).Return(account, nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/accounts/1001", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.RequireFromString("500.25")))
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccount.On("GetAccount", mock.Anything, int64(9999)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/accounts/9999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_BadNumber() {
	w := suite.serveJSON(http.MethodGet, "/api/v1/accounts/not-a-number", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "GetAccount")
}

func (suite *AccountHandlerTestSuite) TestDeposit_Success() {
	amount := decimal.RequireFromString("250.50")
	reqBody := dto.AmountRequest{Amount: amount, Description: "salary"}
	account := &domain.Account{AccountNumber: 1001, Balance: decimal.RequireFromString("750.50")}

	suite.mockTxn.On("Deposit", mock.Anything, int64(1001), amount, "salary", "api").
		Return(domain.Completed, nil).Once()
	suite.mockAccount.On("GetAccount", mock.Anything, int64(1001)).Return(account, nil).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/accounts/1001/deposit", reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(account.Balance))
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	amount := decimal.NewFromInt(600)
	reqBody := dto.AmountRequest{Amount: amount}

	suite.mockTxn.On("Withdraw", mock.Anything, int64(1001), amount, "", "api").
		Return(domain.Failed, fmt.Errorf("%w: account 1001", apperrors.ErrInsufficientFunds)).Once()

	w := suite.serveJSON(http.MethodPost, "/api/v1/accounts/1001/withdraw", reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListTransactions_Success() {
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				Type:          domain.Deposit,
				Status:        domain.Completed,
				Amount:        decimal.NewFromInt(100),
				CreatedAt:     time.Now().UTC(),
			},
		},
		NextToken: nil,
	}

	suite.mockTxn.On("ListTransactionsByAccount", mock.Anything, int64(1001), mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 10
	})).Return(expected, nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/accounts/1001/transactions?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListLoans_Success() {
	loans := []domain.Loan{
		{
			LoanID:        uuid.NewString(),
			AccountNumber: 1001,
			Principal:     decimal.NewFromInt(5000),
			Percent:       decimal.NewFromInt(5),
			StrategyType:  domain.MonthlyCharge,
		},
	}

	suite.mockCharge.On("ListLoansByAccount", mock.Anything, int64(1001)).Return(loans, nil).Once()

	w := suite.serveJSON(http.MethodGet, "/api/v1/accounts/1001/loans", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.mockCharge.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
