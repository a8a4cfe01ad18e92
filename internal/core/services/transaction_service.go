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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService owns the transaction lifecycle state machine:
// PENDING -> COMPLETED | FAILED, COMPLETED -> REFUNDED. All balance-moving
// work is delegated to the repository's atomic units.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, accountRepo: accountRepo}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateShape checks that the request's accounts match its type: TRANSFER
// needs distinct source and target, DEPOSIT only a target, WITHDRAWAL and
// CHARGE only a source.
func validateShape(req dto.CreateTransactionRequest) error {
	switch req.Type {
	case domain.Transfer:
		if req.SourceAccount == nil || req.TargetAccount == nil {
			return fmt.Errorf("%w: transfer requires source and target accounts", apperrors.ErrValidation)
		}
		if *req.SourceAccount == *req.TargetAccount {
			return fmt.Errorf("%w: transfer source and target must differ", apperrors.ErrValidation)
		}
	case domain.Deposit:
		if req.TargetAccount == nil {
			return fmt.Errorf("%w: deposit requires a target account", apperrors.ErrValidation)
		}
		if req.SourceAccount != nil {
			return fmt.Errorf("%w: deposit must not name a source account", apperrors.ErrValidation)
		}
	case domain.Withdrawal, domain.Charge:
		if req.SourceAccount == nil {
			return fmt.Errorf("%w: %s requires a source account", apperrors.ErrValidation, req.Type)
		}
		if req.TargetAccount != nil {
			return fmt.Errorf("%w: %s must not name a target account", apperrors.ErrValidation, req.Type)
		}
	default:
		return fmt.Errorf("%w: unsupported transaction type %q", apperrors.ErrValidation, req.Type)
	}
	return nil
}

// CreateTransaction validates the request and persists a PENDING transaction.
// No money moves until ProcessTransaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}
	if err := validateShape(req); err != nil {
		return nil, err
	}

	// Reject unknown accounts now, while the transaction is still cheap to
	// refuse. Existence is re-checked under lock at processing time.
	accountNumbers := []int64{}
	if req.SourceAccount != nil {
		accountNumbers = append(accountNumbers, *req.SourceAccount)
	}
	if req.TargetAccount != nil {
		accountNumbers = append(accountNumbers, *req.TargetAccount)
	}
	found, err := s.accountRepo.FindAccountsByNumbers(ctx, accountNumbers)
	if err != nil {
		return nil, err
	}
	for _, number := range accountNumbers {
		if _, ok := found[number]; !ok {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, number)
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.New().String(),
		Type:          req.Type,
		Status:        domain.Pending,
		Amount:        req.Amount,
		Description:   req.Description,
		SourceAccount: req.SourceAccount,
		TargetAccount: req.TargetAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// ProcessTransaction applies a PENDING transaction's balance effects and
// returns the resulting status. The debit/credit pair of a transfer commits
// atomically inside the repository unit; partial application is impossible.
// When a debit would overdraw the source, the transaction is marked FAILED
// and ErrInsufficientFunds is returned; balances are untouched. Reprocessing
// a terminal transaction fails with ErrAlreadyProcessed without moving money.
func (s *transactionService) ProcessTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return "", err
	}
	if txn.Status.IsTerminal() {
		return txn.Status, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, transactionID, txn.Status)
	}

	now := time.Now().UTC()
	err = s.txnRepo.ApplyTransaction(ctx, transactionID, txn.BalanceChanges(), userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			// The FAILED mark must survive the rolled-back unit, so it is a
			// separate durable write. The mark is guarded on PENDING: a
			// concurrent processor may settle the transaction between our
			// rollback and this write, and its outcome must stand.
			markErr := s.txnRepo.MarkTransactionFailed(ctx, transactionID, userID, now)
			if markErr == nil {
				logger.Warn("Transaction failed: insufficient funds", slog.String("transaction_id", transactionID))
				return domain.Failed, err
			}
			if errors.Is(markErr, apperrors.ErrAlreadyProcessed) {
				current, findErr := s.txnRepo.FindTransactionByID(ctx, transactionID)
				if findErr != nil {
					return "", findErr
				}
				return current.Status, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, transactionID, current.Status)
			}
			logger.Error("Failed to mark transaction FAILED", slog.String("transaction_id", transactionID), slog.String("error", markErr.Error()))
			return "", markErr
		}
		return "", err
	}

	logger.Info("Transaction completed", slog.String("transaction_id", transactionID), slog.String("type", string(txn.Type)))
	return domain.Completed, nil
}

// RefundTransaction reverses a COMPLETED transaction by creating a new REFUND
// transaction with source and target swapped and handing it to the store's
// reversal unit, which moves the money, completes the refund and flips the
// original to REFUNDED in one commit. The original is never mutated beyond
// its status and the forward link; the refund carries the full audit trail of
// the reversal. Of two concurrent refunds the loser fails with
// ErrInvalidOperation without moving money, and its duplicate refund
// transaction is retired FAILED.
func (s *transactionService) RefundTransaction(ctx context.Context, transactionID string, userID string) (domain.TransactionStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return "", err
	}
	if original.Type == domain.Charge {
		return "", fmt.Errorf("%w: charges cannot be refunded", apperrors.ErrInvalidOperation)
	}
	if !original.Refundable() {
		return "", fmt.Errorf("%w: transaction %s (%s, %s) is not refundable",
			apperrors.ErrInvalidOperation, transactionID, original.Type, original.Status)
	}

	now := time.Now().UTC()
	refund := domain.Transaction{
		TransactionID:         uuid.New().String(),
		Type:                  domain.Refund,
		Status:                domain.Pending,
		Amount:                original.Amount,
		Description:           fmt.Sprintf("refund of %s", original.TransactionID),
		SourceAccount:         original.TargetAccount,
		TargetAccount:         original.SourceAccount,
		OriginalTransactionID: &original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, refund); err != nil {
		return "", err
	}

	if err := s.txnRepo.ApplyRefund(ctx, refund.TransactionID, original.TransactionID, refund.BalanceChanges(), userID, now); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			// Refunding a deposit that was since spent.
			if markErr := s.txnRepo.MarkTransactionFailed(ctx, refund.TransactionID, userID, now); markErr != nil {
				return "", markErr
			}
			logger.Warn("Refund failed: insufficient funds",
				slog.String("transaction_id", transactionID),
				slog.String("refund_transaction_id", refund.TransactionID))
			return domain.Failed, err
		}
		if errors.Is(err, apperrors.ErrInvalidOperation) {
			// A concurrent refund won the race after our PENDING row was
			// saved. Retire the duplicate so it can never be processed.
			if markErr := s.txnRepo.MarkTransactionFailed(ctx, refund.TransactionID, userID, now); markErr != nil {
				return "", markErr
			}
			logger.Warn("Refund lost to a concurrent reversal",
				slog.String("transaction_id", transactionID),
				slog.String("refund_transaction_id", refund.TransactionID))
			return "", err
		}
		return "", err
	}

	logger.Info("Transaction refunded",
		slog.String("transaction_id", transactionID),
		slog.String("refund_transaction_id", refund.TransactionID))
	return domain.Completed, nil
}

// Deposit credits an account through the normal create-then-process path, so
// the movement is recorded like any other transaction.
func (s *transactionService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	return s.createAndProcess(ctx, dto.CreateTransactionRequest{
		Amount:        amount,
		Description:   description,
		Type:          domain.Deposit,
		TargetAccount: &accountNumber,
	}, userID)
}

// Withdraw debits an account through the normal create-then-process path.
func (s *transactionService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string, userID string) (domain.TransactionStatus, error) {
	return s.createAndProcess(ctx, dto.CreateTransactionRequest{
		Amount:        amount,
		Description:   description,
		Type:          domain.Withdrawal,
		SourceAccount: &accountNumber,
	}, userID)
}

func (s *transactionService) createAndProcess(ctx context.Context, req dto.CreateTransactionRequest, userID string) (domain.TransactionStatus, error) {
	txn, err := s.CreateTransaction(ctx, req, userID)
	if err != nil {
		return "", err
	}
	return s.ProcessTransaction(ctx, txn.TransactionID, userID)
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// UpdateTransaction amends the description of a PENDING transaction. Terminal
// transactions are part of the audit record and cannot be amended.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s and cannot be amended",
			apperrors.ErrInvalidOperation, transactionID, txn.Status)
	}
	if req.Description == nil {
		return txn, nil
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionDescription(ctx, transactionID, *req.Description, userID, now); err != nil {
		return nil, err
	}

	txn.Description = *req.Description
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, nil
}

// DeleteTransaction removes a transaction that has not moved money. Deleting
// a COMPLETED or REFUNDED transaction would orphan its balance effect, so it
// fails with ErrInvalidOperation.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Status == domain.Completed || txn.Status == domain.Refunded {
		return fmt.Errorf("%w: transaction %s is %s and has moved money",
			apperrors.ErrInvalidOperation, transactionID, txn.Status)
	}
	return s.txnRepo.DeleteTransaction(ctx, transactionID)
}

// ListTransactionsByAccount returns a paginated page of an account's
// transactions, newest first.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountNumber int64, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}

	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccount(ctx, accountNumber, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
