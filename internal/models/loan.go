package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeStrategyType mirrors domain.ChargeStrategyType for storage.
type ChargeStrategyType string

// Loan is the persistence shape of a loan row.
type Loan struct {
	LoanID        string             `db:"loan_id"`
	AccountNumber int64              `db:"account_number"`
	Principal     decimal.Decimal    `db:"principal"`
	Percent       decimal.Decimal    `db:"percent"`
	StrategyType  ChargeStrategyType `db:"strategy_type"`
	LastChargeAt  time.Time          `db:"last_charge_at"`
	NextChargeAt  time.Time          `db:"next_charge_at"`
	AuditFields
}
