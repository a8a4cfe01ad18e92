package mapping

import (
	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/corebanking/ledger-engine/internal/models"
)

// ToModelTransaction converts a domain transaction to its persistence shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		Type:                  models.TransactionType(d.Type),
		Status:                models.TransactionStatus(d.Status),
		Amount:                d.Amount,
		Description:           d.Description,
		SourceAccount:         d.SourceAccount,
		TargetAccount:         d.TargetAccount,
		OriginalTransactionID: d.OriginalTransactionID,
		RefundTransactionID:   d.RefundTransactionID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a persisted transaction row to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		Type:                  domain.TransactionType(m.Type),
		Status:                domain.TransactionStatus(m.Status),
		Amount:                m.Amount,
		Description:           m.Description,
		SourceAccount:         m.SourceAccount,
		TargetAccount:         m.TargetAccount,
		OriginalTransactionID: m.OriginalTransactionID,
		RefundTransactionID:   m.RefundTransactionID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of persisted rows to domain shapes.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
