package repositories

import (
	"context"
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []int64) (map[int64]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AdjustBalance atomically applies a signed delta to a single account's
	// balance and returns the new balance. A delta that would take the balance
	// below zero fails with ErrInsufficientFunds and leaves it unchanged.
	AdjustBalance(ctx context.Context, accountNumber int64, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountTransactionSupport defines operations used inside larger transactional units.
type AccountTransactionSupport interface {
	// FindAccountsByNumbersForUpdate selects accounts and locks them for update
	// within a transaction. Locks are taken in account-number order.
	FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []int64) (map[int64]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas for multiple
	// accounts within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
