package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/corebanking/ledger-engine/internal/middleware"
	"github.com/corebanking/ledger-engine/internal/utils/interest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// chargeService issues loans and applies their periodic interest charges.
type chargeService struct {
	loanRepo    portsrepo.LoanRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	txnSvc      portssvc.TransactionSvcFacade
}

// NewChargeService creates a new ChargeService.
func NewChargeService(
	loanRepo portsrepo.LoanRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	txnSvc portssvc.TransactionSvcFacade,
) portssvc.ChargeSvcFacade {
	return &chargeService{
		loanRepo:    loanRepo,
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		txnSvc:      txnSvc,
	}
}

// Ensure chargeService implements the portssvc.ChargeSvcFacade interface
var _ portssvc.ChargeSvcFacade = (*chargeService)(nil)

// OpenLoan creates a loan and disburses the principal to the owning account
// through a DEPOSIT transaction. The first charge comes due one full period
// after disbursement.
func (s *chargeService) OpenLoan(ctx context.Context, req dto.OpenLoanRequest, creatorUserID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrValidation, req.Principal.String())
	}
	if req.Percent.IsNegative() {
		return nil, fmt.Errorf("%w: percent must not be negative, got %s", apperrors.ErrValidation, req.Percent.String())
	}
	if _, err := interest.ForType(req.StrategyType); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nextChargeAt, _ := req.StrategyType.Period(now)
	loan := domain.Loan{
		LoanID:        uuid.New().String(),
		AccountNumber: req.AccountNumber,
		Principal:     req.Principal,
		Percent:       req.Percent,
		StrategyType:  req.StrategyType,
		LastChargeAt:  now,
		NextChargeAt:  nextChargeAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		logger.Error("Failed to save loan", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
		return nil, err
	}

	disbursement := fmt.Sprintf("loan %s disbursement", loan.LoanID)
	if _, err := s.txnSvc.Deposit(ctx, req.AccountNumber, req.Principal, disbursement, creatorUserID); err != nil {
		logger.Error("Failed to disburse loan principal", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Loan opened",
		slog.String("loan_id", loan.LoanID),
		slog.Int64("account_number", loan.AccountNumber),
		slog.String("principal", loan.Principal.String()),
		slog.String("strategy", string(loan.StrategyType)))
	return &loan, nil
}

// GetLoan retrieves a loan by its ID.
func (s *chargeService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

// ListLoansByAccount retrieves all loans owned by an account.
func (s *chargeService) ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	return s.loanRepo.ListLoansByAccount(ctx, accountNumber)
}

// ApplyCharge computes one period's interest for the loan and posts it as a
// CHARGE transaction against the owning account, advancing the schedule in
// the same atomic unit. When the account cannot cover the charge the unit
// rolls back whole: the CHARGE transaction is persisted FAILED for audit, the
// schedule stays put so the next run retries, and ErrInsufficientFunds is
// returned.
func (s *chargeService) ApplyCharge(ctx context.Context, loanID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}

	strategy, err := interest.ForType(loan.Strategy())
	if err != nil {
		return err
	}

	amount := strategy.Calculate(loan.Debt(), loan.InterestPercent())
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: computed charge %s for loan %s is not positive",
			apperrors.ErrValidation, amount.String(), loanID)
	}

	now := time.Now().UTC()
	nextChargeAt, ok := loan.Strategy().Period(now)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownStrategy, loan.Strategy())
	}

	account := loan.BankAccount()
	chargeTxn := domain.Transaction{
		TransactionID: uuid.New().String(),
		Type:          domain.Charge,
		Status:        domain.Pending,
		Amount:        amount,
		Description:   fmt.Sprintf("interest charge for loan %s", loanID),
		SourceAccount: &account,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.loanRepo.ApplyCharge(ctx, loanID, chargeTxn, now, nextChargeAt, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			// The unit rolled back, so the transaction row does not exist yet.
			// Persist it FAILED so the rejected charge stays on the record.
			chargeTxn.Status = domain.Failed
			if saveErr := s.txnRepo.SaveTransaction(ctx, chargeTxn); saveErr != nil {
				logger.Error("Failed to record failed charge",
					slog.String("loan_id", loanID), slog.String("error", saveErr.Error()))
				return saveErr
			}
			logger.Warn("Charge failed: insufficient funds",
				slog.String("loan_id", loanID),
				slog.Int64("account_number", account),
				slog.String("amount", amount.String()))
		}
		return err
	}

	logger.Info("Charge applied",
		slog.String("loan_id", loanID),
		slog.Int64("account_number", account),
		slog.String("amount", amount.String()),
		slog.Time("next_charge_at", nextChargeAt))
	return nil
}

// ApplyDueCharges applies charges to every loan due at asOf. A failing loan
// is counted and logged but does not abort the run.
func (s *chargeService) ApplyDueCharges(ctx context.Context, asOf time.Time, userID string) (dto.ChargeRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.loanRepo.ListLoansDue(ctx, asOf)
	if err != nil {
		return dto.ChargeRunResponse{}, err
	}

	var result dto.ChargeRunResponse
	for i := range due {
		if err := s.ApplyCharge(ctx, due[i].LoanID, userID); err != nil {
			result.Failed++
			logger.Warn("Due charge failed",
				slog.String("loan_id", due[i].LoanID), slog.String("error", err.Error()))
			continue
		}
		result.Applied++
	}

	logger.Info("Due charge run finished",
		slog.Time("as_of", asOf),
		slog.Int("applied", result.Applied),
		slog.Int("failed", result.Failed))
	return result, nil
}
