package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEqualWithin(t *testing.T) {
	a := decimal.New(1, 0)
	assert.True(t, EqualWithin(a, decimal.New(10001, -4)))  // diff = 1e-4
	assert.False(t, EqualWithin(a, decimal.New(10002, -4))) // diff = 2e-4
}

func TestRoundShare(t *testing.T) {
	assert.Equal(t, "33.3333", RoundShare(decimal.NewFromFloat(33.33334)).String())
	assert.Equal(t, "33.3334", RoundShare(decimal.NewFromFloat(33.33335)).String())
	assert.Equal(t, "45", RoundShare(decimal.New(45, 0)).String())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "400000.00", FormatAmount(decimal.New(400000, 0)))
	assert.Equal(t, "33.34", FormatAmount(decimal.New(333350, -4)))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
