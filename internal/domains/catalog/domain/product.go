package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	ErrEmptyName     = fmt.Errorf("%w: product name is required", domainerrors.ErrInvalidField)
	ErrNegativeCost  = fmt.Errorf("%w: product cost must be greater or equal to zero", domainerrors.ErrInvalidField)
	ErrNegativePrice = fmt.Errorf("%w: product price must be greater or equal to zero", domainerrors.ErrInvalidField)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a decimal number", domainerrors.ErrInvalidField)
)

// Product is a catalog entry. Its identity is the trimmed name; cost and price may change
// without changing which product it is.
type Product struct {
	Name  string
	Cost  decimal.Decimal
	Price decimal.Decimal
}

// NewProduct validates and builds a product.
func NewProduct(name string, cost, price decimal.Decimal) (Product, error) {
	p := Product{Name: strings.TrimSpace(name), Cost: cost, Price: price}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// NamedProduct builds a zero-priced product carrying only an identity.
func NamedProduct(name string) (Product, error) {
	return NewProduct(name, decimal.Zero, decimal.Zero)
}

// ParseProduct builds a product from textual cost and price, as supplied by parsers and storage.
func ParseProduct(name, cost, price string) (Product, error) {
	c, err := parseAmount(cost)
	if err != nil {
		return Product{}, err
	}
	p, err := parseAmount(price)
	if err != nil {
		return Product{}, err
	}
	return NewProduct(name, c, p)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}

// Validate enforces the product invariants.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Cost.IsNegative() {
		return ErrNegativeCost
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// IsSameProduct reports identity equality: names match exactly, prices are ignored.
func (p Product) IsSameProduct(other Product) bool {
	return p.Name == other.Name
}

// Equal compares every attribute.
func (p Product) Equal(other Product) bool {
	return p.Name == other.Name && p.Cost.Equal(other.Cost) && p.Price.Equal(other.Price)
}

// Margin is the per-unit profit.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

func (p Product) String() string { return p.Name }
