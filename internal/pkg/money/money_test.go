package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "€ 5.00", Format(decimal.NewFromInt(5)))
	assert.Equal(t, "€ 7.50", Format(decimal.RequireFromString("7.5")))
	assert.Equal(t, "€ 2.50", Format(decimal.RequireFromString("2.5")))
}

func TestWithPrefix(t *testing.T) {
	f := WithPrefix("$")
	assert.Equal(t, "$19.00", f(decimal.NewFromInt(19)))
}
