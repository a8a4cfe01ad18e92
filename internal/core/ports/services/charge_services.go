package services

import (
	"context"
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/dto"
)

// ChargeSvcFacade issues loans and applies periodic interest charges.
type ChargeSvcFacade interface {
	// OpenLoan creates a loan and disburses the principal to the owning
	// account through a DEPOSIT transaction.
	OpenLoan(ctx context.Context, req dto.OpenLoanRequest, creatorUserID string) (*domain.Loan, error)

	// GetLoan retrieves a loan; fails with ErrNotFound when absent.
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByAccount retrieves all loans owned by an account.
	ListLoansByAccount(ctx context.Context, accountNumber int64) ([]domain.Loan, error)

	// ApplyCharge computes the interest due for one period, debits the owning
	// account with a CHARGE transaction and advances the charge schedule, all
	// as one atomic unit. Insufficient funds surface exactly like a failed
	// transfer: the CHARGE transaction persists in FAILED state and
	// ErrInsufficientFunds is returned.
	ApplyCharge(ctx context.Context, loanID string, userID string) error

	// ApplyDueCharges applies charges to every loan due at asOf and reports
	// how many succeeded and how many failed. Individual failures do not
	// abort the run.
	ApplyDueCharges(ctx context.Context, asOf time.Time, userID string) (dto.ChargeRunResponse, error)
}
