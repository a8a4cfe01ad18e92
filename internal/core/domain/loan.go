package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeStrategyType selects the interest compounding rule for a chargeable.
// It is fixed at open time; there is no strategy migration.
type ChargeStrategyType string

const (
	DailyCharge   ChargeStrategyType = "DAILY"
	MonthlyCharge ChargeStrategyType = "MONTHLY"
)

// Period returns the scheduling step between two charges for the strategy.
// The boolean is false for unrecognized strategy types.
func (t ChargeStrategyType) Period(from time.Time) (time.Time, bool) {
	switch t {
	case DailyCharge:
		return from.AddDate(0, 0, 1), true
	case MonthlyCharge:
		return from.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

// Chargeable is any entity that accrues periodic interest against an owning
// account. Loans are the only variant today; a credit line would implement the
// same contract.
type Chargeable interface {
	// ChargeableID identifies the entity for scheduling and audit.
	ChargeableID() string
	// BankAccount is the account number the charge is debited from.
	BankAccount() int64
	// Debt is the outstanding principal the charge is computed against.
	Debt() decimal.Decimal
	// InterestPercent is the annual interest rate in percent.
	InterestPercent() decimal.Decimal
	// Strategy selects the compounding rule.
	Strategy() ChargeStrategyType
}

// Loan is a disbursed loan serviced by periodic interest charges.
type Loan struct {
	LoanID        string             `json:"loanID"` // UUID
	AccountNumber int64              `json:"accountNumber"`
	Principal     decimal.Decimal    `json:"principal"` // outstanding debt
	Percent       decimal.Decimal    `json:"percent"`   // annual interest, e.g. 5.0
	StrategyType  ChargeStrategyType `json:"strategyType"`
	LastChargeAt  time.Time          `json:"lastChargeAt"`
	NextChargeAt  time.Time          `json:"nextChargeAt"`
	AuditFields
}

var _ Chargeable = (*Loan)(nil)

func (l *Loan) ChargeableID() string             { return l.LoanID }
func (l *Loan) BankAccount() int64               { return l.AccountNumber }
func (l *Loan) InterestPercent() decimal.Decimal { return l.Percent }
func (l *Loan) Strategy() ChargeStrategyType     { return l.StrategyType }

// Debt is the loan's own outstanding principal. The upstream system derived
// debt from the owning account's balance instead; that accrues interest
// against the wrong quantity, so the principal is used here.
func (l *Loan) Debt() decimal.Decimal { return l.Principal }
