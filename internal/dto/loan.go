package dto

import (
	"time"

	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenLoanRequest defines the data needed to open a new loan.
// The strategy is fixed for the life of the loan.
type OpenLoanRequest struct {
	AccountNumber int64                     `json:"accountNumber" binding:"required,gt=0"`
	Principal     decimal.Decimal           `json:"principal" binding:"required,dgt0"`
	Percent       decimal.Decimal           `json:"percent" binding:"dgte0"`
	StrategyType  domain.ChargeStrategyType `json:"strategyType" binding:"required,oneof=DAILY MONTHLY"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID        string                    `json:"loanID"`
	AccountNumber int64                     `json:"accountNumber"`
	Principal     decimal.Decimal           `json:"principal"`
	Percent       decimal.Decimal           `json:"percent"`
	StrategyType  domain.ChargeStrategyType `json:"strategyType"`
	LastChargeAt  time.Time                 `json:"lastChargeAt"`
	NextChargeAt  time.Time                 `json:"nextChargeAt"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:        l.LoanID,
		AccountNumber: l.AccountNumber,
		Principal:     l.Principal,
		Percent:       l.Percent,
		StrategyType:  l.StrategyType,
		LastChargeAt:  l.LastChargeAt,
		NextChargeAt:  l.NextChargeAt,
		CreatedAt:     l.CreatedAt,
	}
}

// ToLoanResponses converts a slice of domain loans to DTOs.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return out
}

// ChargeRunResponse reports the outcome of a due-charge run.
type ChargeRunResponse struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}
