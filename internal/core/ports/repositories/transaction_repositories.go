package repositories

import (
	"context"
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of transactions that
	// reference the account as source or target, newest first.
	ListTransactionsByAccount(ctx context.Context, accountNumber int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkTransactionFailed flips a PENDING transaction to FAILED outside any
	// balance-moving unit (the mark after a rejected debit must be durable even
	// though the balance change rolled back). The write is guarded on PENDING:
	// when a concurrent processor has already settled the transaction, the mark
	// is refused with ErrAlreadyProcessed and the settled status stands.
	MarkTransactionFailed(ctx context.Context, transactionID string, userID string, now time.Time) error

	// UpdateTransactionDescription amends the description of a transaction.
	UpdateTransactionDescription(ctx context.Context, transactionID string, description string, userID string, now time.Time) error

	// DeleteTransaction removes a transaction row.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionProcessor applies a transaction's balance effects atomically.
type TransactionProcessor interface {
	// ApplyTransaction executes one transactional unit: lock the transaction
	// row, verify it is still PENDING, lock the referenced accounts, verify no
	// balance would go negative, apply the balance changes and mark the
	// transaction COMPLETED. Either all of those effects commit or none do.
	// Fails with ErrAlreadyProcessed when the row is no longer PENDING and
	// ErrInsufficientFunds when a debit exceeds the available balance.
	ApplyTransaction(ctx context.Context, transactionID string, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error

	// ApplyRefund executes the reversal unit: lock the original transaction and
	// verify it is still COMPLETED, lock the PENDING refund row, lock the
	// referenced accounts, verify no balance would go negative, apply the
	// balance changes, mark the refund COMPLETED and flip the original to
	// REFUNDED with the reversing link. Either all of those effects commit or
	// none do, so of two concurrent refunds of the same original the loser
	// aborts with ErrInvalidOperation before any money moves.
	ApplyRefund(ctx context.Context, refundID, originalID string, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionProcessor
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
