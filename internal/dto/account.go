package dto

import (
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account.
// The account number is allocated by the onboarding system, not generated here.
type OpenAccountRequest struct {
	AccountNumber int64  `json:"accountNumber" binding:"required,gt=0"`
	UserID        string `json:"userID" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber int64           `json:"accountNumber"`
	UserID        string          `json:"userID"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		UserID:        acc.UserID,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// AmountRequest carries the amount for deposit and withdrawal endpoints.
type AmountRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description"`
}

// BalanceResponse defines the data returned after a balance mutation.
type BalanceResponse struct {
	AccountNumber int64           `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}
