package services

import (
	"context"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade is the account balance manager contract.
// Debit and Credit are the only ways a balance changes; both run under the
// store's transactional isolation so concurrent operations on the same
// account serialize.
type AccountSvcFacade interface {
	// OpenAccount creates a new zero-balance account.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccount retrieves an account; fails with ErrNotFound when absent.
	GetAccount(ctx context.Context, accountNumber int64) (*domain.Account, error)

	// Debit atomically subtracts amount from the balance and returns the new
	// balance. Fails with ErrValidation for non-positive amounts and
	// ErrInsufficientFunds when the balance would go negative.
	Debit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error)

	// Credit atomically adds amount to the balance and returns the new balance.
	// Fails with ErrValidation for non-positive amounts.
	Credit(ctx context.Context, accountNumber int64, amount decimal.Decimal, userID string) (decimal.Decimal, error)
}
