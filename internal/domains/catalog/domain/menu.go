package domain

import (
	"fmt"
	"strings"

	"github.com/Apurer/order-registry/internal/shared/collection"
	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	ErrDuplicateProduct = fmt.Errorf("%w: product already exists in the menu", domainerrors.ErrDuplicateEntity)
	ErrProductNotFound  = fmt.Errorf("%w: product does not exist in the menu", domainerrors.ErrEntityNotFound)
)

// ProductMenu is the catalog: distinct products in insertion order.
type ProductMenu struct {
	products *collection.UniqueList[Product]
}

// NewProductMenu returns an empty menu.
func NewProductMenu() *ProductMenu {
	return &ProductMenu{
		products: collection.NewUniqueList(Product.IsSameProduct, ErrDuplicateProduct, ErrProductNotFound),
	}
}

// Add appends a product whose name is not yet on the menu.
func (m *ProductMenu) Add(p Product) error {
	return m.products.Add(p)
}

// Delete removes the product with p's name.
func (m *ProductMenu) Delete(p Product) error {
	return m.products.Delete(p)
}

// FindByIndex returns the product at zero-based position i.
func (m *ProductMenu) FindByIndex(i int) (Product, error) {
	return m.products.Get(i)
}

// FindByName returns the position of the product called name, or -1.
func (m *ProductMenu) FindByName(name string) int {
	return m.products.IndexOf(Product{Name: strings.TrimSpace(name)})
}

// Lookup returns the product called name.
func (m *ProductMenu) Lookup(name string) (Product, bool) {
	idx := m.FindByName(name)
	if idx < 0 {
		return Product{}, false
	}
	p, err := m.products.Get(idx)
	return p, err == nil
}

// Edit replaces target with replacement, keeping its position. A replacement sharing target's
// name (a price-only edit) is always accepted.
func (m *ProductMenu) Edit(target, replacement Product) error {
	return m.products.Edit(target, replacement)
}

// ReplaceAll swaps the whole menu; the input must not repeat a name.
func (m *ProductMenu) ReplaceAll(products []Product) error {
	return m.products.ReplaceAll(products)
}

// Contains reports whether a product with p's name is on the menu.
func (m *ProductMenu) Contains(p Product) bool {
	return m.products.Contains(p)
}

// Products returns a copy of the menu in insertion order.
func (m *ProductMenu) Products() []Product {
	return m.products.Items()
}

// Len returns the number of products.
func (m *ProductMenu) Len() int {
	return m.products.Len()
}
