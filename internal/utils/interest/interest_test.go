package interest

import (
	"testing"

	"github.com/corebanking/ledger-engine/internal/apperrors"
	"github.com/corebanking/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMonthlyStrategy(t *testing.T) {
	tests := []struct {
		name     string
		debt     string
		percent  string
		expected string
	}{
		{"standard rate", "5000", "5.0", "437.5"},       // 5000 * 1.05 / 12
		{"zero percent", "5000", "0", "416.67"},         // 5000 / 12 = 416.666...
		{"zero debt", "0", "5.0", "0"},
		{"negative percent does not crash", "1200", "-100", "0"},
		{"fractional debt", "1234.56", "12.5", "115.74"}, // 1388.88 / 12 = 115.74
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyStrategy{}.Calculate(dec(tt.debt), dec(tt.percent))
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestDailyStrategy(t *testing.T) {
	tests := []struct {
		name     string
		debt     string
		percent  string
		expected string
	}{
		{"standard rate", "1000", "10.0", "3.01"}, // 1100 / 365 = 3.01369...
		{"zero percent", "365", "0", "1"},
		{"zero debt", "0", "10.0", "0"},
		{"rounds half up", "364.635", "0", "1"}, // 364.635 / 365 = 0.999... -> 1.00
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyStrategy{}.Calculate(dec(tt.debt), dec(tt.percent))
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	debt := dec("5000")
	percent := dec("5.0")
	first := MonthlyStrategy{}.Calculate(debt, percent)
	second := MonthlyStrategy{}.Calculate(debt, percent)
	assert.True(t, first.Equal(second))
	// Inputs must not be mutated.
	assert.True(t, debt.Equal(dec("5000")))
	assert.True(t, percent.Equal(dec("5.0")))
}

func TestForType(t *testing.T) {
	daily, err := ForType(domain.DailyCharge)
	require.NoError(t, err)
	assert.IsType(t, DailyStrategy{}, daily)

	monthly, err := ForType(domain.MonthlyCharge)
	require.NoError(t, err)
	assert.IsType(t, MonthlyStrategy{}, monthly)

	_, err = ForType(domain.ChargeStrategyType("WEEKLY"))
	assert.ErrorIs(t, err, apperrors.ErrUnknownStrategy)

	_, err = ForType("")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStrategy)
}
