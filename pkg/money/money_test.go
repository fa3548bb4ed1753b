package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.5, Round2(1.5))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, 0.0, Round2(math.NaN()))
}

func TestRound2Dec(t *testing.T) {
	d := decimal.NewFromFloat(1.5).Mul(decimal.NewFromFloat(33.333))
	assert.Equal(t, 50.0, Round2Dec(d))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5", Format(1.5))
	assert.Equal(t, "60", Format(60))
	assert.Equal(t, "0", Format(math.Inf(1)))
	assert.Equal(t, "60.00", Format2(60))
	assert.Equal(t, "12.35", Format2(12.345))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.0, Sanitize(math.NaN()))
	assert.Equal(t, 0.0, Sanitize(math.Inf(-1)))
	assert.Equal(t, 4.25, Sanitize(4.25))
}
