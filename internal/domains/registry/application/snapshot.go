package application

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
	registry "github.com/Apurer/order-registry/internal/domains/registry/domain"
	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

// EncodeSnapshot converts the registry contents into their persisted form.
func EncodeSnapshot(c registry.Contents) *ports.Snapshot {
	snap := &ports.Snapshot{
		Persons:  make([]ports.PersonRecord, 0, len(c.Persons)),
		Products: make([]ports.ProductRecord, 0, len(c.Products)),
		Orders:   make([]ports.OrderRecord, 0, len(c.Orders)),
	}
	for _, p := range c.Persons {
		snap.Persons = append(snap.Persons, ports.PersonRecord{
			Name:    p.Name(),
			Phone:   p.Phone(),
			Email:   p.Email(),
			Address: p.Address(),
			Remark:  p.Remark(),
			Tags:    p.Tags(),
		})
	}
	for _, p := range c.Products {
		snap.Products = append(snap.Products, ports.ProductRecord{Name: p.Name, Cost: p.Cost, Price: p.Price})
	}
	for _, o := range c.Orders {
		snap.Orders = append(snap.Orders, encodeOrder(o))
	}
	return snap
}

func encodeOrder(o *orders.Order) ports.OrderRecord {
	productMap := make(map[string]int, len(o.Lines()))
	for name, q := range o.ProductMap() {
		productMap[name] = q.Value()
	}
	cost, sales, profit := o.TotalCost(), o.TotalSales(), o.Profit()
	return ports.OrderRecord{
		ID:            o.ID(),
		ProductMap:    productMap,
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		CreationDate:  o.CreationDate().String(),
		Deadline:      o.DeadlineString(),
		Stage:         o.Stage().String(),
		TotalCost:     &cost,
		TotalSales:    &sales,
		Profit:        &profit,
	}
}

// DecodeSnapshot rebuilds registry contents from a snapshot. Any invalid person, product or
// order stage fails the whole decode. Unparseable deadlines are dropped. Order customers are
// re-resolved by phone and then by name against the decoded persons; order products take their
// prices from the decoded menu.
func DecodeSnapshot(snap *ports.Snapshot, layouts []string) (registry.Contents, error) {
	var c registry.Contents
	if snap == nil {
		return c, nil
	}
	persons := customers.NewUniquePersonList()
	for _, r := range snap.Persons {
		p, err := customers.NewPerson(r.Name, r.Phone, r.Email, r.Address, r.Remark, r.Tags)
		if err != nil {
			return registry.Contents{}, fmt.Errorf("person %q: %w", r.Name, err)
		}
		if err := persons.Add(p); err != nil {
			return registry.Contents{}, err
		}
	}
	menu := catalog.NewProductMenu()
	for _, r := range snap.Products {
		p, err := catalog.NewProduct(r.Name, r.Cost, r.Price)
		if err != nil {
			return registry.Contents{}, fmt.Errorf("product %q: %w", r.Name, err)
		}
		if err := menu.Add(p); err != nil {
			return registry.Contents{}, err
		}
	}
	c.Persons = persons.Persons()
	c.Products = menu.Products()
	for _, r := range snap.Orders {
		o, err := decodeOrder(r, persons, menu, layouts)
		if err != nil {
			return registry.Contents{}, fmt.Errorf("order %d: %w", r.ID, err)
		}
		c.Orders = append(c.Orders, o)
	}
	return c, nil
}

func decodeOrder(r ports.OrderRecord, persons *customers.UniquePersonList, menu *catalog.ProductMenu, layouts []string) (*orders.Order, error) {
	stage, err := orders.ParseStageContext(r.Stage)
	if err != nil {
		return nil, err
	}
	created, err := orders.ParseCreationDate(r.CreationDate)
	if err != nil {
		return nil, err
	}
	customer, err := resolveCustomer(r, persons)
	if err != nil {
		return nil, err
	}
	snap := orders.Snapshot{
		ID:           r.ID,
		Customer:     customer,
		CreationDate: created,
		Stage:        stage,
		TotalCost:    cloneDecimal(r.TotalCost),
		TotalSales:   cloneDecimal(r.TotalSales),
		Profit:       cloneDecimal(r.Profit),
	}
	if r.Deadline != "" {
		if d, err := orders.ParseDeadline(r.Deadline, layouts); err == nil {
			snap.Deadline = &d
		}
	}
	names := make([]string, 0, len(r.ProductMap))
	for name := range r.ProductMap {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		q, err := orders.NewQuantity(r.ProductMap[name])
		if err != nil {
			return nil, err
		}
		product, ok := menu.Lookup(name)
		if !ok {
			if product, err = catalog.NamedProduct(name); err != nil {
				return nil, err
			}
		}
		snap.Lines = append(snap.Lines, orders.Line{Product: product, Quantity: q})
	}
	return orders.Restore(snap)
}

func resolveCustomer(r ports.OrderRecord, persons *customers.UniquePersonList) (customers.Person, error) {
	if p, ok := persons.FindByPhone(r.CustomerPhone); ok {
		return p, nil
	}
	if p, ok := persons.FindByName(r.CustomerName); ok {
		return p, nil
	}
	return customers.NewPerson(r.CustomerName, r.CustomerPhone, "", "", "", nil)
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
