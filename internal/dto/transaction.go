package dto

import (
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a new transaction.
// Source/target requirements depend on the type: TRANSFER needs both, DEPOSIT
// only a target, WITHDRAWAL and CHARGE only a source. REFUND transactions are
// created through the refund endpoint, never directly.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal        `json:"amount" binding:"required,dgt0"`
	Description   string                 `json:"description"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=TRANSFER DEPOSIT WITHDRAWAL CHARGE"`
	SourceAccount *int64                 `json:"sourceAccount"`
	TargetAccount *int64                 `json:"targetAccount"`
}

// UpdateTransactionRequest defines the administrative corrections allowed on a
// transaction. Only the description may change, and only before processing.
type UpdateTransactionRequest struct {
	Description *string `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID         string                   `json:"transactionID"`
	Type                  domain.TransactionType   `json:"type"`
	Status                domain.TransactionStatus `json:"status"`
	Amount                decimal.Decimal          `json:"amount"`
	Description           string                   `json:"description"`
	SourceAccount         *int64                   `json:"sourceAccount,omitempty"`
	TargetAccount         *int64                   `json:"targetAccount,omitempty"`
	OriginalTransactionID *string                  `json:"originalTransactionID,omitempty"`
	RefundTransactionID   *string                  `json:"refundTransactionID,omitempty"`
	CreatedAt             time.Time                `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		Type:                  txn.Type,
		Status:                txn.Status,
		Amount:                txn.Amount,
		Description:           txn.Description,
		SourceAccount:         txn.SourceAccount,
		TargetAccount:         txn.TargetAccount,
		OriginalTransactionID: txn.OriginalTransactionID,
		RefundTransactionID:   txn.RefundTransactionID,
		CreatedAt:             txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// StatusResponse reports the outcome of processing or refunding a transaction.
type StatusResponse struct {
	TransactionID string                   `json:"transactionID"`
	Status        domain.TransactionStatus `json:"status"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a paginated page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
