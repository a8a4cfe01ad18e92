package services

import (
	"context"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade owns the transaction lifecycle state machine.
type TransactionSvcFacade interface {
	// CreateTransaction validates the request (positive amount, existing
	// accounts, shape matching the type) and persists a PENDING transaction.
	// No money moves yet.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// ProcessTransaction applies a PENDING transaction's balance effects
	// atomically and returns the resulting status (COMPLETED or FAILED).
	// Processing a terminal transaction fails with ErrAlreadyProcessed and
	// never re-applies balances.
	ProcessTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error)

	// RefundTransaction reverses a COMPLETED TRANSFER/DEPOSIT/WITHDRAWAL by
	// creating and processing a new REFUND transaction with source and target
	// swapped. Fails with ErrInvalidOperation for charges.
	RefundTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error)

	// Deposit credits an account through the normal transaction path.
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error)

	// Withdraw debits an account through the normal transaction path.
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error)

	// GetTransactionByID retrieves a transaction; fails with ErrNotFound when absent.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// UpdateTransaction amends administrative fields of a PENDING transaction.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction that has not moved money.
	// Deleting a COMPLETED or REFUNDED transaction fails with
	// ErrInvalidOperation to avoid orphaning the balance effect.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ListTransactionsByAccount returns a paginated page of an account's
	// transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, accountNumber int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
