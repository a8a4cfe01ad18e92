package mapping

import (
	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/models"
)

// ToModelAccount converts a domain account to its persistence shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber: d.AccountNumber,
		UserID:        d.UserID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		Balance:       d.Balance,
	}
}

// ToDomainAccount converts a persisted account row to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber: m.AccountNumber,
		UserID:        m.UserID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Balance:       m.Balance,
	}
}
