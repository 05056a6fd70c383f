// Package domain holds the AddressBook aggregate that keeps customers, the product menu and
// orders consistent with each other.
package domain

import (
	"errors"
	"fmt"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
)

// AddressBook exclusively owns the three collections. Callers receive copies only.
type AddressBook struct {
	persons *customers.UniquePersonList
	menu    *catalog.ProductMenu
	orders  *orders.OrderList
}

func NewAddressBook() *AddressBook {
	return &AddressBook{
		persons: customers.NewUniquePersonList(),
		menu:    catalog.NewProductMenu(),
		orders:  orders.NewOrderList(),
	}
}

// Contents is the full state of an address book, used to seed or replace it.
type Contents struct {
	Persons  []customers.Person
	Products []catalog.Product
	Orders   []*orders.Order
}

// ResetData replaces every collection. Nothing changes unless all three are valid.
func (b *AddressBook) ResetData(c Contents) error {
	persons := customers.NewUniquePersonList()
	if err := persons.ReplaceAll(c.Persons); err != nil {
		return err
	}
	menu := catalog.NewProductMenu()
	if err := menu.ReplaceAll(c.Products); err != nil {
		return err
	}
	list := orders.NewOrderList()
	if err := list.ReplaceAll(c.Orders); err != nil {
		return err
	}
	b.persons, b.menu, b.orders = persons, menu, list
	return nil
}

// Contents returns a copy of the current state.
func (b *AddressBook) Contents() Contents {
	return Contents{
		Persons:  b.persons.Persons(),
		Products: b.menu.Products(),
		Orders:   b.orders.Orders(),
	}
}

// Persons

func (b *AddressBook) HasPerson(p customers.Person) bool { return b.persons.Contains(p) }

func (b *AddressBook) AddPerson(p customers.Person) error { return b.persons.Add(p) }

// DeletePerson removes the customer. Orders keep the customer snapshot they already hold.
func (b *AddressBook) DeletePerson(p customers.Person) error { return b.persons.Delete(p) }

// EditPerson replaces target and then refreshes the customer snapshot of every order that
// referenced it.
func (b *AddressBook) EditPerson(target, edited customers.Person) error {
	if err := b.persons.Edit(target, edited); err != nil {
		return err
	}
	b.orders.RefreshCustomer(target, edited)
	return nil
}

func (b *AddressBook) FindPersonByName(name string) (customers.Person, bool) {
	return b.persons.FindByName(name)
}

func (b *AddressBook) FindPersonByPhone(phone string) (customers.Person, bool) {
	return b.persons.FindByPhone(phone)
}

func (b *AddressBook) Persons() []customers.Person { return b.persons.Persons() }

// Products

func (b *AddressBook) HasProduct(p catalog.Product) bool { return b.menu.Contains(p) }

func (b *AddressBook) AddProduct(p catalog.Product) error { return b.menu.Add(p) }

// DeleteProduct removes p from the menu. Existing orders are untouched.
func (b *AddressBook) DeleteProduct(p catalog.Product) error { return b.menu.Delete(p) }

// EditProduct replaces target in the menu. Existing orders keep their old prices and totals.
func (b *AddressBook) EditProduct(target, edited catalog.Product) error {
	return b.menu.Edit(target, edited)
}

func (b *AddressBook) FindProductByIndex(i int) (catalog.Product, error) {
	return b.menu.FindByIndex(i)
}

// FindProductByName returns the menu position of name, or -1.
func (b *AddressBook) FindProductByName(name string) int { return b.menu.FindByName(name) }

func (b *AddressBook) LookupProduct(name string) (catalog.Product, bool) {
	return b.menu.Lookup(name)
}

func (b *AddressBook) Products() []catalog.Product { return b.menu.Products() }

// Orders

func (b *AddressBook) HasOrder(id int) bool { return b.orders.Exists(id) }

// AddOrder attaches person to order and stores it. The person must already be a known
// customer; the stored copy carries the canonical customer record.
func (b *AddressBook) AddOrder(order *orders.Order, person customers.Person) (*orders.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	canonical, ok := b.persons.Lookup(person)
	if !ok {
		return nil, fmt.Errorf("%w: %s", customers.ErrPersonNotFound, person.Name())
	}
	working := order.Clone()
	working.AttachCustomer(canonical)
	return b.orders.Add(working)
}

func (b *AddressBook) DeleteOrder(id int) error { return b.orders.Remove(id) }

func (b *AddressBook) GetOrder(id int) (*orders.Order, error) { return b.orders.Get(id) }

func (b *AddressBook) SetOrder(targetID int, replacement *orders.Order) error {
	return b.orders.SetOrder(targetID, replacement)
}

// EditOrder sets the quantity of product in the order; zero removes the product.
func (b *AddressBook) EditOrder(id int, product catalog.Product, quantity orders.Quantity) (*orders.Order, error) {
	return b.orders.EditProductQuantity(id, product, quantity)
}

func (b *AddressBook) EditOrderDeadline(id int, deadline orders.Deadline) (*orders.Order, error) {
	return b.orders.EditDeadline(id, deadline)
}

func (b *AddressBook) AdvanceOrderStage(id int) (*orders.Order, error) {
	return b.orders.AdvanceStage(id)
}

// ClearCompletedOrders drops every order at the terminal stage.
func (b *AddressBook) ClearCompletedOrders() { b.orders.ClearCompleted() }

func (b *AddressBook) FindOrderByIndex(i int) (*orders.Order, error) {
	return b.orders.FindByIndex(i)
}

func (b *AddressBook) NextOrderID() int { return b.orders.NextID() }

func (b *AddressBook) OrderListSize() int { return b.orders.Size() }

func (b *AddressBook) Orders() []*orders.Order { return b.orders.Orders() }
