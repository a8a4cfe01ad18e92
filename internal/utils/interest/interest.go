package interest

import (
	"fmt"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Strategy computes the interest amount due for one billing period.
// Implementations are pure and stateless; the same inputs always yield the
// same output, so the charge applier's results are deterministic.
type Strategy interface {
	Calculate(debt, percent decimal.Decimal) decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	daysPY  = decimal.NewFromInt(365)
)

// DailyStrategy charges debt × (1 + percent/100) / 365, rounded to 2 decimal
// places, half up.
type DailyStrategy struct{}

func (DailyStrategy) Calculate(debt, percent decimal.Decimal) decimal.Decimal {
	return debt.Mul(one.Add(percent.Div(hundred))).Div(daysPY).Round(2)
}

// MonthlyStrategy charges debt × (1 + percent/100) / 12, rounded to 2 decimal
// places, half up.
type MonthlyStrategy struct{}

func (MonthlyStrategy) Calculate(debt, percent decimal.Decimal) decimal.Decimal {
	return debt.Mul(one.Add(percent.Div(hundred))).Div(twelve).Round(2)
}

// strategies maps the strategy selector to its stateless implementation.
var strategies = map[domain.ChargeStrategyType]Strategy{
	domain.DailyCharge:   DailyStrategy{},
	domain.MonthlyCharge: MonthlyStrategy{},
}

// ForType returns the strategy for the given selector, or ErrUnknownStrategy
// when the selector is unrecognized or empty.
func ForType(t domain.ChargeStrategyType) (Strategy, error) {
	s, ok := strategies[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStrategy, string(t))
	}
	return s, nil
}
