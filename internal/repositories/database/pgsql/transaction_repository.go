package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	"github.com/corebanking/ledger-engine/internal/models"
	"github.com/corebanking/ledger-engine/internal/utils/mapping"
	"github.com/corebanking/ledger-engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// insertTransaction inserts one transaction row, standalone or inside a unit.
func insertTransaction(ctx context.Context, db dbExecutor, m models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, type, status, amount, description, source_account, target_account,
			original_transaction_id, refund_transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := db.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Status,
		m.Amount,
		m.Description,
		m.SourceAccount,
		m.TargetAccount,
		m.OriginalTransactionID,
		m.RefundTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, mapping.ToModelTransaction(txn))
}

const transactionColumns = `transaction_id, type, status, amount, description, source_account, target_account,
	original_transaction_id, refund_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var source, target sql.NullInt64
	var originalID, refundID sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.Status,
		&m.Amount,
		&m.Description,
		&source,
		&target,
		&originalID,
		&refundID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	if source.Valid {
		m.SourceAccount = &source.Int64
	}
	if target.Valid {
		m.TargetAccount = &target.Int64
	}
	if originalID.Valid {
		m.OriginalTransactionID = &originalID.String
	}
	if refundID.Valid {
		m.RefundTransactionID = &refundID.String
	}
	return m, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// ApplyTransaction executes the balance-moving unit for one PENDING
// transaction: lock the transaction row, re-check its status, lock the
// referenced accounts in account-number order, verify no balance goes
// negative, apply the deltas and flip the status to COMPLETED. The whole unit
// commits or rolls back together, so readers observe a transfer's debit and
// credit either fully applied or not at all.
func (r *PgxTransactionRepository) ApplyTransaction(ctx context.Context, transactionID string, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the transaction row. This is the double-submit guard: two
	// concurrent processors serialize here and the loser sees a terminal
	// status after the winner commits.
	var status models.TransactionStatus
	lockQuery := `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, transactionID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	if domain.TransactionStatus(status) != domain.Pending {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, transactionID, status)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	statusQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, transactionID, models.TransactionStatus(domain.Completed), now, userID); err != nil {
		return fmt.Errorf("failed to complete transaction %s: %w", transactionID, err)
	}

	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the referenced accounts in account-number order,
// verifies the non-negative balance invariant and applies the deltas, all
// inside the caller's unit.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error {
	accountNumbers := make([]int64, 0, len(balanceChanges))
	for number := range balanceChanges {
		accountNumbers = append(accountNumbers, number)
	}
	sort.Slice(accountNumbers, func(i, j int) bool { return accountNumbers[i] < accountNumbers[j] })

	lockedAccounts, err := r.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, accountNumbers)
	if err != nil {
		return err
	}

	// Verify the non-negative balance invariant before touching anything.
	for _, number := range accountNumbers {
		delta := balanceChanges[number]
		if !delta.IsNegative() {
			continue
		}
		account := lockedAccounts[number]
		if account.Balance.Add(delta).IsNegative() {
			return fmt.Errorf("%w: account %d balance %s cannot cover %s",
				apperrors.ErrInsufficientFunds, number, account.Balance.String(), delta.Neg().String())
		}
	}

	return r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now)
}

// ApplyRefund executes the reversal unit for one refund transaction. The
// original is locked first and re-checked COMPLETED, so two concurrent
// refunds of the same original serialize on its row and the loser aborts
// before any money moves. The refund row is then locked and re-checked
// PENDING, the balance deltas applied, the refund marked COMPLETED and the
// original flipped to REFUNDED with the reversing link, all in one commit.
func (r *PgxTransactionRepository) ApplyRefund(ctx context.Context, refundID, originalID string, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`

	var originalStatus models.TransactionStatus
	if err := tx.QueryRow(ctx, lockQuery, originalID).Scan(&originalStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, originalID)
		}
		return fmt.Errorf("failed to lock transaction %s: %w", originalID, err)
	}
	if domain.TransactionStatus(originalStatus) != domain.Completed {
		return fmt.Errorf("%w: transaction %s is not in a refundable state", apperrors.ErrInvalidOperation, originalID)
	}

	var refundStatus models.TransactionStatus
	if err := tx.QueryRow(ctx, lockQuery, refundID).Scan(&refundStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, refundID)
		}
		return fmt.Errorf("failed to lock transaction %s: %w", refundID, err)
	}
	if domain.TransactionStatus(refundStatus) != domain.Pending {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyProcessed, refundID, refundStatus)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	statusQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, refundID, models.TransactionStatus(domain.Completed), now, userID); err != nil {
		return fmt.Errorf("failed to complete refund %s: %w", refundID, err)
	}

	linkQuery := `
		UPDATE transactions
		SET status = $2, refund_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, originalID, models.TransactionStatus(domain.Refunded), refundID, now, userID); err != nil {
		return fmt.Errorf("failed to link refund %s to transaction %s: %w", refundID, originalID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkTransactionFailed flips a PENDING transaction to FAILED. The status
// guard keeps the mark from clobbering a transaction a concurrent processor
// settled between the caller's rollback and this write.
func (r *PgxTransactionRepository) MarkTransactionFailed(ctx context.Context, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		transactionID,
		models.TransactionStatus(domain.Failed),
		now,
		userID,
		models.TransactionStatus(domain.Pending),
	)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s failed: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is no longer pending", apperrors.ErrAlreadyProcessed, transactionID)
	}
	return nil
}

// UpdateTransactionDescription amends the description of a transaction.
func (r *PgxTransactionRepository) UpdateTransactionDescription(ctx context.Context, transactionID string, description string, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, description, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update description of transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// DeleteTransaction removes a transaction row. Whether deletion is allowed at
// all is decided by the service layer; the repository only reports absence.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// ListTransactionsByAccount retrieves a paginated list of transactions that
// reference the account as source or target, newest first, using token-based
// pagination on (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountNumber int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (source_account = $1 OR target_account = $1)`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	args := []interface{}{accountNumber}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %d: %w", accountNumber, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}
