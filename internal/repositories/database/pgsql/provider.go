package pgsql

import (
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := NewAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: NewTransactionRepository(pool, accountRepo),
		LoanRepo:        NewLoanRepository(pool, accountRepo),
	}
}
