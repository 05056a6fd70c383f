package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// ErrNegativeTotal rejects a stored cost or sales total below zero. Profit may be negative.
var ErrNegativeTotal = fmt.Errorf("%w: order totals cannot be negative", domainerrors.ErrInvalidField)

// Line is one product entry of an order.
type Line struct {
	Product  catalog.Product
	Quantity Quantity
}

// Cost is the unit cost times the quantity.
func (l Line) Cost() decimal.Decimal {
	return l.Product.Cost.Mul(decimal.NewFromInt(int64(l.Quantity.Value())))
}

// Sales is the unit price times the quantity.
func (l Line) Sales() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity.Value())))
}

func (l Line) String() string {
	return fmt.Sprintf("%s x %s", l.Product.Name, l.Quantity)
}

// Order is a customer order. Lines are keyed by product identity and kept in insertion order;
// totals are recomputed whenever the lines change.
type Order struct {
	id           int
	lines        []Line
	customer     customers.Person
	creationDate CreationDate
	deadline     *Deadline
	stage        StageContext
	totalCost    decimal.Decimal
	totalSales   decimal.Decimal
	profit       decimal.Decimal
}

// NewOrder creates an empty order at the initial stage. An id of zero asks the owning list to
// assign one.
func NewOrder(id int, created CreationDate) *Order {
	o := &Order{id: id, creationDate: created, stage: NewStageContext()}
	o.recompute()
	return o
}

// Snapshot carries the persisted state of an order for rehydration. Nil totals are recomputed
// from the lines.
type Snapshot struct {
	ID           int
	Lines        []Line
	Customer     customers.Person
	CreationDate CreationDate
	Deadline     *Deadline
	Stage        StageContext
	TotalCost    *decimal.Decimal
	TotalSales   *decimal.Decimal
	Profit       *decimal.Decimal
}

// Restore rebuilds an order from a snapshot. Stored totals are kept as-is so that financial
// history is not re-priced on load, but negative cost or sales totals are rejected.
func Restore(s Snapshot) (*Order, error) {
	for _, total := range []*decimal.Decimal{s.TotalCost, s.TotalSales} {
		if total != nil && total.IsNegative() {
			return nil, fmt.Errorf("%w: order %d", ErrNegativeTotal, s.ID)
		}
	}
	o := &Order{
		id:           s.ID,
		customer:     s.Customer,
		creationDate: s.CreationDate,
		stage:        s.Stage,
	}
	o.recompute()
	if s.Deadline != nil {
		d := *s.Deadline
		o.deadline = &d
	}
	for _, line := range s.Lines {
		if err := line.Product.Validate(); err != nil {
			return nil, err
		}
		o.SetQuantity(line.Product, line.Quantity)
	}
	if s.TotalCost != nil {
		o.totalCost = *s.TotalCost
	}
	if s.TotalSales != nil {
		o.totalSales = *s.TotalSales
	}
	switch {
	case s.Profit != nil:
		o.profit = *s.Profit
	case s.TotalCost != nil || s.TotalSales != nil:
		o.profit = o.totalSales.Sub(o.totalCost)
	}
	return o, nil
}

func (o *Order) ID() int { return o.id }
func (o *Order) Customer() customers.Person { return o.customer }
func (o *Order) CreationDate() CreationDate { return o.creationDate }
func (o *Order) StageContext() StageContext { return o.stage }
func (o *Order) Stage() Stage { return o.stage.Stage() }
func (o *Order) TotalCost() decimal.Decimal { return o.totalCost }
func (o *Order) TotalSales() decimal.Decimal { return o.totalSales }
func (o *Order) Profit() decimal.Decimal { return o.profit }
func (o *Order) Lines() []Line { return slices.Clone(o.lines) }
func (o *Order) IsCompleted() bool { return o.stage.IsTerminal() }
func (o *Order) AttachCustomer(p customers.Person) { o.customer = p }

// Deadline returns the deadline, if one has been set.
func (o *Order) Deadline() (Deadline, bool) {
	if o.deadline == nil {
		return Deadline{}, false
	}
	return *o.deadline, true
}

// DeadlineString renders the deadline or an empty string.
func (o *Order) DeadlineString() string {
	if o.deadline == nil {
		return ""
	}
	return o.deadline.String()
}

// SetDeadline overwrites the deadline.
func (o *Order) SetDeadline(d Deadline) {
	o.deadline = &d
}

// ProductMap returns quantities keyed by product name.
func (o *Order) ProductMap() map[string]Quantity {
	out := make(map[string]Quantity, len(o.lines))
	for _, line := range o.lines {
		out[line.Product.Name] = line.Quantity
	}
	return out
}

// QuantityOf returns the quantity ordered of the named product.
func (o *Order) QuantityOf(name string) (Quantity, bool) {
	idx := o.lineIndex(name)
	if idx < 0 {
		return Quantity{}, false
	}
	return o.lines[idx].Quantity, true
}

// SetQuantity inserts or overwrites the line for p. A zero quantity removes the product from
// the order. An existing line keeps the product snapshot it was created with.
func (o *Order) SetQuantity(p catalog.Product, q Quantity) {
	idx := o.lineIndex(p.Name)
	switch {
	case q.IsZero() && idx >= 0:
		o.lines = slices.Delete(o.lines, idx, idx+1)
	case q.IsZero():
	case idx >= 0:
		o.lines[idx].Quantity = q
	default:
		o.lines = append(o.lines, Line{Product: p, Quantity: q})
	}
	o.recompute()
}

// AdvanceStage moves the order one stage forward.
func (o *Order) AdvanceStage() error {
	return o.stage.Advance()
}

// IsUrgent reports whether a deadline is set and falls within days of now.
func (o *Order) IsUrgent(now time.Time, days int) bool {
	return o.deadline != nil && o.deadline.IsWithinDaysFrom(now, days)
}

// TotalsConsistent reports whether the stored totals match a fresh computation from the lines.
func (o *Order) TotalsConsistent() bool {
	cost, sales := o.sums()
	return cost.Equal(o.totalCost) && sales.Equal(o.totalSales) && sales.Sub(cost).Equal(o.profit)
}

// ProductSummary renders the lines as "name x qty" joined by "; ".
func (o *Order) ProductSummary() string {
	parts := make([]string, 0, len(o.lines))
	for _, line := range o.lines {
		parts = append(parts, line.String())
	}
	return strings.Join(parts, "; ")
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.lines = slices.Clone(o.lines)
	if o.deadline != nil {
		d := *o.deadline
		clone.deadline = &d
	}
	return &clone
}

func (o *Order) lineIndex(name string) int {
	return slices.IndexFunc(o.lines, func(l Line) bool { return l.Product.Name == name })
}

func (o *Order) sums() (decimal.Decimal, decimal.Decimal) {
	cost, sales := decimal.Zero, decimal.Zero
	for _, line := range o.lines {
		cost = cost.Add(line.Cost())
		sales = sales.Add(line.Sales())
	}
	return cost, sales
}

func (o *Order) recompute() {
	o.totalCost, o.totalSales = o.sums()
	o.profit = o.totalSales.Sub(o.totalCost)
}
