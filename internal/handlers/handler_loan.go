package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/corebanking/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans and charges.
type loanHandler struct {
	chargeService portssvc.ChargeSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(cs portssvc.ChargeSvcFacade) *loanHandler {
	return &loanHandler{chargeService: cs}
}

// registerLoanRoutes registers routes related to loans and charge runs.
func registerLoanRoutes(rg *gin.RouterGroup, cs portssvc.ChargeSvcFacade) {
	h := newLoanHandler(cs)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.openLoan)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/charge", h.applyCharge)
	}

	// The due-charge run is triggered by an external scheduler.
	rg.POST("/charges/run", h.runDueCharges)
}

// openLoan godoc
// @Summary Open a new loan
// @Description Creates a loan and disburses the principal to the owning account
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.OpenLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to open loan"
// @Router /loans [post]
func (h *loanHandler) openLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorID(c)
	loan, err := h.chargeService.OpenLoan(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnknownStrategy):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Failed to open loan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open loan"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan
// @Description Retrieves a loan with its charge schedule
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	loan, err := h.chargeService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to get loan", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// applyCharge godoc
// @Summary Apply a charge to a loan
// @Description Debits one period's interest from the owning account and advances the schedule
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 204 "Charge applied"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Charge not yet due"
// @Failure 422 {object} map[string]string "Insufficient funds; charge recorded FAILED"
// @Failure 500 {object} map[string]string "Failed to apply charge"
// @Router /loans/{loanID}/charge [post]
func (h *loanHandler) applyCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	actorID := middleware.GetActorID(c)
	if err := h.chargeService.ApplyCharge(c.Request.Context(), loanID, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		case errors.Is(err, apperrors.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnknownStrategy), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply charge", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply charge"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// runDueCharges godoc
// @Summary Run due charges
// @Description Applies charges to every loan due at the given time (defaults to now)
// @Tags loans
// @Produce  json
// @Param   asOf query string false "Charge cutoff (RFC 3339)"
// @Success 200 {object} dto.ChargeRunResponse
// @Failure 400 {object} map[string]string "Invalid cutoff"
// @Failure 500 {object} map[string]string "Failed to run charges"
// @Router /charges/run [post]
func (h *loanHandler) runDueCharges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf timestamp, expected RFC 3339"})
			return
		}
		asOf = parsed.UTC()
	}

	actorID := middleware.GetActorID(c)
	result, err := h.chargeService.ApplyDueCharges(c.Request.Context(), asOf, actorID)
	if err != nil {
		logger.Error("Failed to run due charges", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run charges"})
		return
	}

	c.JSON(http.StatusOK, result)
}
