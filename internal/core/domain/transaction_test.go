package domain_test

import (
	"testing"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status domain.TransactionStatus
		want   bool
	}{
		{domain.Pending, false},
		{domain.Completed, true},
		{domain.Failed, true},
		{domain.Refunded, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestTransaction_BalanceChanges(t *testing.T) {
	source := int64(1001)
	target := int64(2002)
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name string
		txn  domain.Transaction
		want map[int64]decimal.Decimal
	}{
		{
			name: "transfer debits source and credits target",
			txn: domain.Transaction{
				Type:          domain.Transfer,
				Amount:        amount,
				SourceAccount: &source,
				TargetAccount: &target,
			},
			want: map[int64]decimal.Decimal{
				source: amount.Neg(),
				target: amount,
			},
		},
		{
			name: "deposit credits target only",
			txn: domain.Transaction{
				Type:          domain.Deposit,
				Amount:        amount,
				TargetAccount: &target,
			},
			want: map[int64]decimal.Decimal{target: amount},
		},
		{
			name: "withdrawal debits source only",
			txn: domain.Transaction{
				Type:          domain.Withdrawal,
				Amount:        amount,
				SourceAccount: &source,
			},
			want: map[int64]decimal.Decimal{source: amount.Neg()},
		},
		{
			name: "charge debits source, money leaves the ledger",
			txn: domain.Transaction{
				Type:          domain.Charge,
				Amount:        amount,
				SourceAccount: &source,
			},
			want: map[int64]decimal.Decimal{source: amount.Neg()},
		},
		{
			name: "refund moves money back",
			txn: domain.Transaction{
				Type:          domain.Refund,
				Amount:        amount,
				SourceAccount: &target,
				TargetAccount: &source,
			},
			want: map[int64]decimal.Decimal{
				target: amount.Neg(),
				source: amount,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.BalanceChanges()
			assert.Len(t, got, len(tt.want))
			for account, delta := range tt.want {
				assert.True(t, got[account].Equal(delta), "account %d: want %s, got %s", account, delta, got[account])
			}
		})
	}
}

func TestTransaction_Refundable(t *testing.T) {
	source := int64(1001)
	target := int64(2002)

	tests := []struct {
		name string
		txn  domain.Transaction
		want bool
	}{
		{
			name: "completed transfer is refundable",
			txn:  domain.Transaction{Type: domain.Transfer, Status: domain.Completed, SourceAccount: &source, TargetAccount: &target},
			want: true,
		},
		{
			name: "completed deposit is refundable",
			txn:  domain.Transaction{Type: domain.Deposit, Status: domain.Completed, TargetAccount: &target},
			want: true,
		},
		{
			name: "completed withdrawal is refundable",
			txn:  domain.Transaction{Type: domain.Withdrawal, Status: domain.Completed, SourceAccount: &source},
			want: true,
		},
		{
			name: "completed charge is not refundable",
			txn:  domain.Transaction{Type: domain.Charge, Status: domain.Completed, SourceAccount: &source},
			want: false,
		},
		{
			name: "completed refund is not refundable again",
			txn:  domain.Transaction{Type: domain.Refund, Status: domain.Completed, SourceAccount: &target, TargetAccount: &source},
			want: false,
		},
		{
			name: "pending transfer is not refundable",
			txn:  domain.Transaction{Type: domain.Transfer, Status: domain.Pending, SourceAccount: &source, TargetAccount: &target},
			want: false,
		},
		{
			name: "failed transfer is not refundable",
			txn:  domain.Transaction{Type: domain.Transfer, Status: domain.Failed, SourceAccount: &source, TargetAccount: &target},
			want: false,
		},
		{
			name: "already refunded transfer is not refundable",
			txn:  domain.Transaction{Type: domain.Transfer, Status: domain.Refunded, SourceAccount: &source, TargetAccount: &target},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.Refundable())
		})
	}
}
