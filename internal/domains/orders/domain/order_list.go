package domain

import (
	"errors"
	"fmt"
	"slices"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	ErrDuplicateOrder = fmt.Errorf("%w: order id already exists", domainerrors.ErrDuplicateEntity)
	ErrOrderNotFound  = fmt.Errorf("%w: order does not exist", domainerrors.ErrEntityNotFound)
	ErrInvalidOrderID = fmt.Errorf("%w: order id must be greater than zero", domainerrors.ErrInvalidField)
)

// OrderList owns every order, keyed by id and kept in insertion order. It hands out clones only.
type OrderList struct {
	orders []*Order
	lastID int
}

func NewOrderList() *OrderList {
	return &OrderList{}
}

// NextID returns an id that has never been issued by this list.
func (l *OrderList) NextID() int {
	return l.lastID + 1
}

// Add stores a copy of order. An order with id zero is assigned the next free id.
func (l *OrderList) Add(order *Order) (*Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if clone.id == 0 {
		clone.id = l.NextID()
	}
	if clone.id < 0 {
		return nil, ErrInvalidOrderID
	}
	if l.Exists(clone.id) {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateOrder, clone.id)
	}
	l.orders = append(l.orders, clone)
	l.lastID = max(l.lastID, clone.id)
	return clone.Clone(), nil
}

// Remove deletes the order with id.
func (l *OrderList) Remove(id int) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return notFound(id)
	}
	l.orders = slices.Delete(l.orders, idx, idx+1)
	return nil
}

// Get returns a copy of the order with id.
func (l *OrderList) Get(id int) (*Order, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil, notFound(id)
	}
	return l.orders[idx].Clone(), nil
}

// Exists reports whether a live order has id.
func (l *OrderList) Exists(id int) bool {
	return l.indexOf(id) >= 0
}

// SetOrder replaces the order with targetID. The replacement keeps its own id, which must not
// collide with a different live order.
func (l *OrderList) SetOrder(targetID int, replacement *Order) error {
	if replacement == nil {
		return errors.New("order is nil")
	}
	idx := l.indexOf(targetID)
	if idx < 0 {
		return notFound(targetID)
	}
	clone := replacement.Clone()
	if clone.id == 0 {
		clone.id = targetID
	}
	if clone.id != targetID && l.Exists(clone.id) {
		return fmt.Errorf("%w: %d", ErrDuplicateOrder, clone.id)
	}
	l.orders[idx] = clone
	l.lastID = max(l.lastID, clone.id)
	return nil
}

// EditProductQuantity sets the quantity of product in the order; zero removes the product.
func (l *OrderList) EditProductQuantity(id int, product catalog.Product, quantity Quantity) (*Order, error) {
	return l.mutate(id, func(o *Order) error {
		o.SetQuantity(product, quantity)
		return nil
	})
}

// EditDeadline sets or overwrites the order's deadline.
func (l *OrderList) EditDeadline(id int, deadline Deadline) (*Order, error) {
	return l.mutate(id, func(o *Order) error {
		o.SetDeadline(deadline)
		return nil
	})
}

// AdvanceStage moves the order one stage forward; it fails at the terminal stage.
func (l *OrderList) AdvanceStage(id int) (*Order, error) {
	return l.mutate(id, (*Order).AdvanceStage)
}

// ClearCompleted drops every order at the terminal stage.
func (l *OrderList) ClearCompleted() {
	l.orders = slices.DeleteFunc(l.orders, (*Order).IsCompleted)
}

// RefreshCustomer points every order whose customer is oldPerson at newPerson instead.
func (l *OrderList) RefreshCustomer(oldPerson, newPerson customers.Person) {
	for _, o := range l.orders {
		if o.customer.IsSamePerson(oldPerson) {
			o.customer = newPerson
		}
	}
}

// ReplaceAll swaps the whole list, rejecting repeated ids.
func (l *OrderList) ReplaceAll(orders []*Order) error {
	seen := make(map[int]struct{}, len(orders))
	next := make([]*Order, 0, len(orders))
	lastID := 0
	for _, o := range orders {
		if o == nil {
			return errors.New("order is nil")
		}
		if o.id <= 0 {
			return ErrInvalidOrderID
		}
		if _, dup := seen[o.id]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateOrder, o.id)
		}
		seen[o.id] = struct{}{}
		next = append(next, o.Clone())
		lastID = max(lastID, o.id)
	}
	l.orders = next
	l.lastID = max(l.lastID, lastID)
	return nil
}

// FindByIndex returns a copy of the i-th order in insertion order.
func (l *OrderList) FindByIndex(i int) (*Order, error) {
	if i < 0 || i >= len(l.orders) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", domainerrors.ErrIndexOutOfRange, i, len(l.orders))
	}
	return l.orders[i].Clone(), nil
}

// Orders returns copies of every order in insertion order.
func (l *OrderList) Orders() []*Order {
	out := make([]*Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (l *OrderList) Size() int { return len(l.orders) }

// mutate applies fn to a working copy and commits it only when fn succeeds.
func (l *OrderList) mutate(id int, fn func(*Order) error) (*Order, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil, notFound(id)
	}
	working := l.orders[idx].Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	l.orders[idx] = working
	return working.Clone(), nil
}

func (l *OrderList) indexOf(id int) int {
	return slices.IndexFunc(l.orders, func(o *Order) bool { return o.id == id })
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
}
