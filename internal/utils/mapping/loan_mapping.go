package mapping

import (
	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/models"
)

// ToModelLoan converts a domain loan to its persistence shape.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:        d.LoanID,
		AccountNumber: d.AccountNumber,
		Principal:     d.Principal,
		Percent:       d.Percent,
		StrategyType:  models.ChargeStrategyType(d.StrategyType),
		LastChargeAt:  d.LastChargeAt,
		NextChargeAt:  d.NextChargeAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a persisted loan row to the domain shape.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:        m.LoanID,
		AccountNumber: m.AccountNumber,
		Principal:     m.Principal,
		Percent:       m.Percent,
		StrategyType:  domain.ChargeStrategyType(m.StrategyType),
		LastChargeAt:  m.LastChargeAt,
		NextChargeAt:  m.NextChargeAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
