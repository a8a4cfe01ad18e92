package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/corebanking/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	txnService     portssvc.TransactionSvcFacade
	chargeService  portssvc.ChargeSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransactionSvcFacade, cs portssvc.ChargeSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		txnService:     ts,
		chargeService:  cs,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, ts portssvc.TransactionSvcFacade, cs portssvc.ChargeSvcFacade) {
	h := newAccountHandler(as, ts, cs)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.POST("/:accountNumber/deposit", h.deposit)
		accounts.POST("/:accountNumber/withdraw", h.withdraw)
		accounts.GET("/:accountNumber/transactions", h.listTransactions)
		accounts.GET("/:accountNumber/loans", h.listLoans)
	}
}

func parseAccountNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("accountNumber"), 10, 64)
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account number"})
		return 0, false
	}
	return number, true
}

// openAccount godoc
// @Summary Open a new account
// @Description Creates a new account with a zero balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account already exists"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorID(c)
	account, err := h.accountService.OpenAccount(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to open account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account with its current balance
// @Tags accounts
// @Produce  json
// @Param   accountNumber path int true "Account Number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := parseAccountNumber(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.Int64("account_number", number), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the account through a DEPOSIT transaction
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path int true "Account Number"
// @Param   amount body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deposit"
// @Router /accounts/{accountNumber}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.move(c, true)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the account through a WITHDRAWAL transaction
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path int true "Account Number"
// @Param   amount body dto.AmountRequest true "Amount to withdraw"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to withdraw"
// @Router /accounts/{accountNumber}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.move(c, false)
}

func (h *accountHandler) move(c *gin.Context, isDeposit bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := parseAccountNumber(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorID(c)
	var err error
	if isDeposit {
		_, err = h.txnService.Deposit(c.Request.Context(), number, req.Amount, req.Description, actorID)
	} else {
		_, err = h.txnService.Withdraw(c.Request.Context(), number, req.Amount, req.Description, actorID)
	}
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to move money", slog.Int64("account_number", number), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		}
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), number)
	if err != nil {
		logger.Error("Failed to read balance after movement", slog.Int64("account_number", number), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: number, Balance: account.Balance})
}

// listTransactions godoc
// @Summary List account transactions
// @Description Retrieves a paginated list of the account's transactions, newest first
// @Tags accounts
// @Produce  json
// @Param   accountNumber path int true "Account Number"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /accounts/{accountNumber}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := parseAccountNumber(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.txnService.ListTransactionsByAccount(c.Request.Context(), number, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.Int64("account_number", number), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listLoans godoc
// @Summary List account loans
// @Description Retrieves all loans owned by the account
// @Tags accounts
// @Produce  json
// @Param   accountNumber path int true "Account Number"
// @Success 200 {array} dto.LoanResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list loans"
// @Router /accounts/{accountNumber}/loans [get]
func (h *accountHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := parseAccountNumber(c)
	if !ok {
		return
	}

	loans, err := h.chargeService.ListLoansByAccount(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list loans", slog.Int64("account_number", number), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list loans"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}
