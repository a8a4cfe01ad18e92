package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionType classifies the kind of money movement a transaction performs.
type TransactionType string

const (
	Transfer   TransactionType = "TRANSFER"
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Charge     TransactionType = "CHARGE"
	Refund     TransactionType = "REFUND"
)

// TransactionStatus is the state of a transaction in its lifecycle.
//
// PENDING is the only initial state. COMPLETED and FAILED are reached by
// processing; REFUNDED is reached only from COMPLETED when a reversing
// transaction is posted. COMPLETED, FAILED and REFUNDED are terminal for
// balance application: a transaction in any of them never moves money again.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
	Refunded  TransactionStatus = "REFUNDED"
)

// IsTerminal reports whether processing the transaction again may apply balances.
func (s TransactionStatus) IsTerminal() bool {
	return s == Completed || s == Failed || s == Refunded
}

// Transaction represents a single money movement between at most two accounts.
// Source is nil only for pure deposits; target is nil for charges (money leaves
// the ledger) and for withdrawals. A transaction is immutable once terminal,
// except that refunding a COMPLETED transaction creates a new linked REFUND
// transaction rather than mutating the original.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // UUID, generated at creation
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"` // must be > 0
	Description   string            `json:"description"`
	SourceAccount *int64            `json:"sourceAccount"` // nil for pure deposits
	TargetAccount *int64            `json:"targetAccount"` // nil for charges/withdrawals

	// Refund linkage, both directions. A REFUND transaction points back at the
	// transaction it reverses; a refunded original points forward at its refund.
	OriginalTransactionID *string `json:"originalTransactionID,omitempty"`
	RefundTransactionID   *string `json:"refundTransactionID,omitempty"`

	AuditFields
}

// Debits reports whether processing this transaction debits its source account.
func (t Transaction) Debits() bool {
	switch t.Type {
	case Transfer, Withdrawal, Charge, Refund:
		return t.SourceAccount != nil
	}
	return false
}

// Credits reports whether processing this transaction credits its target account.
func (t Transaction) Credits() bool {
	switch t.Type {
	case Transfer, Deposit, Refund:
		return t.TargetAccount != nil
	}
	return false
}

// Refundable reports whether the transaction may be reversed by a REFUND.
// Charges cannot be refunded (the money has left the ledger), nor can refunds
// themselves; everything else qualifies once COMPLETED.
func (t Transaction) Refundable() bool {
	if t.Status != Completed {
		return false
	}
	switch t.Type {
	case Transfer, Deposit, Withdrawal:
		return true
	}
	return false
}

// BalanceChanges returns the per-account signed deltas processing this
// transaction must apply. Debits are negative, credits positive. All data
// needed is on the transaction itself; the map is empty for malformed shapes
// (those are rejected at creation time).
func (t Transaction) BalanceChanges() map[int64]decimal.Decimal {
	changes := make(map[int64]decimal.Decimal, 2)
	if t.Debits() {
		changes[*t.SourceAccount] = changes[*t.SourceAccount].Sub(t.Amount)
	}
	if t.Credits() {
		changes[*t.TargetAccount] = changes[*t.TargetAccount].Add(t.Amount)
	}
	return changes
}
