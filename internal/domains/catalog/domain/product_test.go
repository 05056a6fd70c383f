package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

func TestNewProduct_TrimsAndValidates(t *testing.T) {
	p, err := NewProduct("  Cupcake ", decimal.RequireFromString("1.50"), decimal.RequireFromString("3.00"))
	require.NoError(t, err)
	assert.Equal(t, "Cupcake", p.Name)
	assert.True(t, p.Margin().Equal(decimal.RequireFromString("1.50")))

	_, err = NewProduct("   ", decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, ErrEmptyName)
	require.ErrorIs(t, err, domainerrors.ErrInvalidField)

	_, err = NewProduct("Tart", decimal.NewFromInt(-1), decimal.Zero)
	require.ErrorIs(t, err, ErrNegativeCost)

	_, err = NewProduct("Tart", decimal.Zero, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestParseProduct(t *testing.T) {
	p, err := ParseProduct("Brownie", "2.25", "")
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(decimal.RequireFromString("2.25")))
	assert.True(t, p.Price.IsZero())

	_, err = ParseProduct("Brownie", "two", "3")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestProduct_IdentityIgnoresPrices(t *testing.T) {
	a, _ := ParseProduct("Cupcake", "1", "2")
	b, _ := ParseProduct("Cupcake", "5", "9")
	c, _ := ParseProduct("cupcake", "1", "2")

	assert.True(t, a.IsSameProduct(b))
	assert.False(t, a.Equal(b))
	assert.False(t, a.IsSameProduct(c), "identity is case-sensitive")
}
