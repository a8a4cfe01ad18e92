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
	"github.com/shopspring/decimal"
)

// accountService is the account balance manager. It owns the non-negative
// balance invariant; nothing else in the engine writes balances.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a new account with a zero balance. The account number
// comes from the onboarding system; the engine never allocates one.
func (s *accountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AccountNumber <= 0 {
		return nil, fmt.Errorf("%w: account number must be positive", apperrors.ErrValidation)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: owning user is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountNumber: req.AccountNumber,
		UserID:        req.UserID,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.Int64("account_number", req.AccountNumber), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Account opened", slog.Int64("account_number", account.AccountNumber), slog.String("user_id", account.UserID))
	return &account, nil
}

// GetAccount retrieves an account by number.
func (s *accountService) GetAccount(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Debit atomically subtracts amount from the account's balance and returns the
// new balance. A debit down to exactly zero succeeds; exceeding the balance by
// any positive amount fails with ErrInsufficientFunds and leaves the balance
// unchanged. The check-and-update runs under the store's row lock, so
// concurrent debits on the same account serialize.
func (s *accountService) Debit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	newBalance, err := s.accountRepo.AdjustBalance(ctx, accountNumber, amount.Neg(), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Debit rejected", slog.Int64("account_number", accountNumber), slog.String("amount", amount.String()))
		}
		return decimal.Zero, err
	}

	logger.Info("Account debited", slog.Int64("account_number", accountNumber), slog.String("amount", amount.String()), slog.String("balance", newBalance.String()))
	return newBalance, nil
}

// Credit atomically adds amount to the account's balance and returns the new balance.
func (s *accountService) Credit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: credit amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	newBalance, err := s.accountRepo.AdjustBalance(ctx, accountNumber, amount, userID, time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}

	logger.Info("Account credited", slog.Int64("account_number", accountNumber), slog.String("amount", amount.String()), slog.String("balance", newBalance.String()))
	return newBalance, nil
}
