package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	"github.com/corebanking/ledger-engine/internal/models"
	"github.com/corebanking/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLoanRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLoanRepository creates a new repository for loan data.
func NewLoanRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LoanRepositoryWithTx {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryWithTx
var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

// SaveLoan persists a new loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)

	query := `
		INSERT INTO loans (loan_id, account_number, principal, percent, strategy_type, last_charge_at, next_charge_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.AccountNumber,
		m.Principal,
		m.Percent,
		m.StrategyType,
		m.LastChargeAt,
		m.NextChargeAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan %s: %w", m.LoanID, err)
	}
	return nil
}

const loanColumns = `loan_id, account_number, principal, percent, strategy_type, last_charge_at, next_charge_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.AccountNumber,
		&m.Principal,
		&m.Percent,
		&m.StrategyType,
		&m.LastChargeAt,
		&m.NextChargeAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}

	domainLoan := mapping.ToDomainLoan(m)
	return &domainLoan, nil
}

func (r *PgxLoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainLoan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return loans, nil
}

// ListLoansByAccount retrieves all loans owned by an account.
func (r *PgxLoanRepository) ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE account_number = $1 ORDER BY created_at;`
	return r.queryLoans(ctx, query, accountNumber)
}

// ListLoansDue retrieves loans whose next charge is at or before asOf.
func (r *PgxLoanRepository) ListLoansDue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE next_charge_at <= $1 ORDER BY next_charge_at;`
	return r.queryLoans(ctx, query, asOf)
}

// ApplyCharge executes the charge unit for one loan: lock the loan row, lock
// the owning account, verify funds, debit the charge amount, record the
// CHARGE transaction as COMPLETED and advance the charge schedule. All five
// effects commit together or not at all; a crash mid-application can never
// leave the debit applied without the schedule advanced, or vice versa.
func (r *PgxLoanRepository) ApplyCharge(ctx context.Context, loanID string, chargeTxn domain.Transaction, lastChargeAt, nextChargeAt time.Time, userID string, now time.Time) error {
	if chargeTxn.SourceAccount == nil {
		return fmt.Errorf("%w: charge transaction has no source account", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the loan row so two concurrent charge runs serialize per loan.
	lockQuery := `SELECT next_charge_at FROM loans WHERE loan_id = $1 FOR UPDATE;`
	var currentNext time.Time
	if err := tx.QueryRow(ctx, lockQuery, loanID).Scan(&currentNext); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		return fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}

	// Re-check dueness under the lock. Two overlapping runs both list the
	// loan as due; the winner advances the schedule past now, so the loser
	// must abort here rather than charge the same period twice.
	if currentNext.After(now) {
		return fmt.Errorf("%w: loan %s is not due until %s",
			apperrors.ErrAlreadyProcessed, loanID, currentNext.Format(time.RFC3339))
	}

	accountNumber := *chargeTxn.SourceAccount
	lockedAccounts, err := r.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []int64{accountNumber})
	if err != nil {
		return err
	}

	account := lockedAccounts[accountNumber]
	if account.Balance.Sub(chargeTxn.Amount).IsNegative() {
		return fmt.Errorf("%w: account %d balance %s cannot cover charge %s",
			apperrors.ErrInsufficientFunds, accountNumber, account.Balance.String(), chargeTxn.Amount.String())
	}

	changes := map[int64]decimal.Decimal{accountNumber: chargeTxn.Amount.Neg()}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, userID, now); err != nil {
		return err
	}

	// The transaction record commits with the debit, so it is born COMPLETED.
	model := mapping.ToModelTransaction(chargeTxn)
	model.Status = models.TransactionStatus(domain.Completed)
	if err := insertTransaction(ctx, tx, model); err != nil {
		return err
	}

	scheduleQuery := `
		UPDATE loans
		SET last_charge_at = $2, next_charge_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $1;
	`
	if _, err := tx.Exec(ctx, scheduleQuery, loanID, lastChargeAt, nextChargeAt, now, userID); err != nil {
		return fmt.Errorf("failed to advance charge schedule of loan %s: %w", loanID, err)
	}

	return r.Commit(ctx, tx)
}
