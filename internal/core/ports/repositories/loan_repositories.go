package repositories

import (
	"context"
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
)

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByAccount retrieves all loans owned by an account.
	ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error)

	// ListLoansDue retrieves loans whose next charge timestamp is at or before asOf.
	ListLoansDue(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error
}

// ChargeApplier posts a periodic charge against a loan atomically.
type ChargeApplier interface {
	// ApplyCharge executes one transactional unit: lock the loan row, lock the
	// owning account, verify funds, debit the charge amount, record the CHARGE
	// transaction as COMPLETED and advance the loan's charge schedule. Either
	// all of those effects commit or none do, so a crash mid-application can
	// never debit without advancing the schedule or vice versa.
	// Dueness is re-checked under the loan row lock: when the schedule has
	// already been advanced past now by a concurrent run, the unit fails with
	// ErrAlreadyProcessed before any debit. Fails with ErrInsufficientFunds
	// when the account cannot cover the charge; the schedule is then left
	// untouched.
	ApplyCharge(ctx context.Context, loanID string, chargeTxn domain.Transaction, lastChargeAt, nextChargeAt time.Time, userID string, now time.Time) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	ChargeApplier
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with transaction capabilities.
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
