package models

import "github.com/shopspring/decimal"

// Account is the persistence shape of a bank account row.
type Account struct {
	AccountNumber int64  `db:"account_number"`
	UserID        string `db:"user_id"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}
