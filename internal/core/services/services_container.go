package services

import (
	portsrepo "github.com/corebanking/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/corebanking/ledger-engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	// Transaction service needs account reads for existence checks at creation.
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo)

	// Charge service disburses loan principals through the transaction service.
	container.Charge = NewChargeService(repos.LoanRepo, repos.TransactionRepo, repos.AccountRepo, container.Transaction)

	return container
}
