package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
)

type fakeConfig struct {
	rules    map[string]*models.ChargeRule
	reserves map[string]float64
}

func (f *fakeConfig) GetChargeRule(operation string) (*models.ChargeRule, error) {
	if rule, ok := f.rules[operation]; ok {
		return rule, nil
	}
	return nil, repositories.ErrChargeRuleNotFound
}

func (f *fakeConfig) GetReserve(method string) (float64, error) {
	return f.reserves[method], nil
}

func TestQuotePercentagePlusFixed(t *testing.T) {
	cfg := &fakeConfig{
		rules: map[string]*models.ChargeRule{
			OperationSend: {Operation: OperationSend, Percentage: 2, Fixed: 2},
		},
	}
	resolver := NewResolver()

	quote, err := resolver.Quote(cfg, OperationSend, "", 50)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, quote.Charge, 1e-9)
	assert.InDelta(t, 0.0, quote.ReserveUsed, 1e-9)
	assert.InDelta(t, 53.0, quote.TotalDeduction, 1e-9)
}

func TestQuoteReserveOffsetsChargeableBase(t *testing.T) {
	cfg := &fakeConfig{
		rules: map[string]*models.ChargeRule{
			OperationTransfer: {Operation: OperationTransfer, Percentage: 2, Fixed: 5},
		},
		reserves: map[string]float64{"mpesa": 15},
	}
	resolver := NewResolver()

	quote, err := resolver.Quote(cfg, OperationTransfer, "mpesa", 30)
	require.NoError(t, err)

	// 15 of the 30 is reserve-covered; 2% applies to the remaining 15.
	assert.InDelta(t, 15.0, quote.ReserveUsed, 1e-9)
	assert.InDelta(t, 5.3, quote.Charge, 1e-9)
	assert.InDelta(t, 35.3, quote.TotalDeduction, 1e-9)
}

func TestQuoteReserveLargerThanAmount(t *testing.T) {
	cfg := &fakeConfig{
		rules: map[string]*models.ChargeRule{
			OperationTransfer: {Operation: OperationTransfer, Percentage: 2, Fixed: 5},
		},
		reserves: map[string]float64{"mpesa": 100},
	}
	resolver := NewResolver()

	quote, err := resolver.Quote(cfg, OperationTransfer, "mpesa", 30)
	require.NoError(t, err)

	// Only the amount itself can be drawn from the pool.
	assert.InDelta(t, 30.0, quote.ReserveUsed, 1e-9)
	assert.InDelta(t, 5.0, quote.Charge, 1e-9)
}

func TestQuoteFallsBackToDefaults(t *testing.T) {
	cfg := &fakeConfig{}
	resolver := NewResolver()

	quote, err := resolver.Quote(cfg, OperationSend, "", 100)
	require.NoError(t, err)

	assert.InDelta(t, DefaultFixed+100*DefaultPercentage/100, quote.Charge, 1e-9)
}

func TestQuoteRejectsNonPositiveAmount(t *testing.T) {
	resolver := NewResolver()

	for _, amount := range []float64{0, -5} {
		_, err := resolver.Quote(&fakeConfig{}, OperationSend, "", amount)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	}
}
