package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a customer bank account in the ledger.
// The account number is allocated externally (by the onboarding system), not
// generated here. Balance is only ever mutated through the balance manager's
// debit/credit operations; callers never write it directly.
type Account struct {
	AccountNumber int64  `json:"accountNumber"`
	UserID        string `json:"userID"` // owning user reference
	AuditFields
	Balance decimal.Decimal `json:"balance"` // invariant: never negative
}
