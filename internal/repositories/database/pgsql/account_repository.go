package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	"github.com/corebanking/ledger-engine/internal/models"
	"github.com/corebanking/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_number, user_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.UserID,
		modelAcc.Balance,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account %d already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return fmt.Errorf("failed to save account %d: %w", modelAcc.AccountNumber, err)
	}
	return nil
}

const accountColumns = `account_number, user_id, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountNumber,
		&m.UserID,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountNumber)
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountNumber, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by account number.
// Callers are responsible for checking that every requested account was found.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []int64) (map[int64]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[int64]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[int64]domain.Account, len(accountNumbers))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// AdjustBalance atomically applies a signed delta to one account's balance.
// The row is locked for the duration of the check-and-update so concurrent
// debits and credits on the same account serialize. A delta that would take
// the balance below zero fails with ErrInsufficientFunds; the check runs on
// the decimal values, not a floating-point approximation.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, accountNumber int64, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT balance FROM accounts WHERE account_number = $1 FOR UPDATE;`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, accountNumber).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountNumber)
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %d: %w", accountNumber, err)
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: account %d balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, accountNumber, balance.String(), delta.Neg().String())
	}

	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountNumber, newBalance, now, userID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance of account %d: %w", accountNumber, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// FindAccountsByNumbersForUpdate selects accounts and locks them for update
// within a transaction. Rows are locked in account-number order so two
// concurrent transfers touching the same pair of accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []int64) (map[int64]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[int64]domain.Account{}, nil
	}

	sorted := make([]int64, len(accountNumbers))
	copy(sorted, accountNumbers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = ANY($1) ORDER BY account_number FOR UPDATE;`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[int64]domain.Account, len(sorted))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, number := range sorted {
		if _, ok := accounts[number]; !ok {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, number)
		}
	}

	return accounts, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas for multiple accounts
// within a given transaction. Callers must have locked the rows first.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`

	batch := &pgx.Batch{}
	for accountNumber, delta := range balanceChanges {
		batch.Queue(query, accountNumber, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}
