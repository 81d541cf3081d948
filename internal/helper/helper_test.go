package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinite(t *testing.T) {
	assert.True(t, Finite(0))
	assert.True(t, Finite(-1.5))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(1)))
	assert.False(t, Finite(math.Inf(-1)))
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 12.3457, Round(12.345678, 4), 1e-9)
	assert.InDelta(t, 80.0, Round(80.004, 2), 1e-9)
	assert.InDelta(t, 80.01, Round(80.006, 2), 1e-9)
	assert.InDelta(t, -2.5, Round(-2.4999, 1), 1e-9)
}

func TestCentsFromPrice(t *testing.T) {
	got, ok := CentsFromPrice(80, "cents")
	assert.True(t, ok)
	assert.Equal(t, 80.0, got)

	got, ok = CentsFromPrice(0.8, "dollars")
	assert.True(t, ok)
	assert.InDelta(t, 80.0, got, 1e-9)

	_, ok = CentsFromPrice(math.NaN(), "cents")
	assert.False(t, ok)
}

func TestSharesFromUSD(t *testing.T) {
	got, ok := SharesFromUSD(10, 80)
	assert.True(t, ok)
	assert.InDelta(t, 12.5, got, 1e-9)

	_, ok = SharesFromUSD(10, 0)
	assert.False(t, ok)

	_, ok = SharesFromUSD(10, math.NaN())
	assert.False(t, ok)
}
