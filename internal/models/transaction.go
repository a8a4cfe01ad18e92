package models

import "github.com/shopspring/decimal"

// TransactionType mirrors domain.TransactionType for storage.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus for storage.
type TransactionStatus string

// Transaction is the persistence shape of a transaction row.
// Source/target account numbers and refund links are nullable columns.
type Transaction struct {
	TransactionID         string            `db:"transaction_id"`
	Type                  TransactionType   `db:"type"`
	Status                TransactionStatus `db:"status"`
	Amount                decimal.Decimal   `db:"amount"`
	Description           string            `db:"description"`
	SourceAccount         *int64            `db:"source_account"`
	TargetAccount         *int64            `db:"target_account"`
	OriginalTransactionID *string           `db:"original_transaction_id"`
	RefundTransactionID   *string           `db:"refund_transaction_id"`
	AuditFields
}
