package mapper

import (
	"github.com/shopspring/decimal"

	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
)

// OrderItem is one product line in an order request.
type OrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrder is the payload opening a new order.
type CreateOrder struct {
	CustomerPhone string      `json:"customerPhone,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	Deadline      string      `json:"deadline,omitempty"`
	Items         []OrderItem `json:"items"`
}

// SetDeadline is the payload replacing an order deadline.
type SetDeadline struct {
	Deadline string `json:"deadline"`
}

// OrderLine is one product line in an order response.
type OrderLine struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID           int             `json:"id"`
	Customer     Person          `json:"customer"`
	Lines        []OrderLine     `json:"lines"`
	Summary      string          `json:"summary"`
	CreationDate string          `json:"creationDate"`
	Deadline     string          `json:"deadline,omitempty"`
	Stage        string          `json:"stage"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	Profit       decimal.Decimal `json:"profit"`
	Urgent       bool            `json:"urgent"`
}

// OrderPage wraps a filtered order listing with the size of the whole list.
type OrderPage struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
}

// ToCreateOrderInput maps a transport payload into the application input.
func ToCreateOrderInput(payload CreateOrder) types.CreateOrderInput {
	items := make([]types.OrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, types.OrderItemInput{Product: item.Product, Quantity: item.Quantity})
	}
	return types.CreateOrderInput{
		CustomerPhone: payload.CustomerPhone,
		CustomerName:  payload.CustomerName,
		Deadline:      payload.Deadline,
		Items:         items,
	}
}

// FromProjection maps an order projection to its transport form.
func FromProjection(projection *types.OrderProjection) Order {
	if projection == nil || projection.Order == nil {
		return Order{}
	}
	o := projection.Order
	lines := o.Lines()
	out := Order{
		ID:           o.ID(),
		Customer:     FromPerson(o.Customer()),
		Lines:        make([]OrderLine, 0, len(lines)),
		Summary:      o.ProductSummary(),
		CreationDate: o.CreationDate().String(),
		Deadline:     o.DeadlineString(),
		Stage:        o.Stage().String(),
		TotalCost:    o.TotalCost(),
		TotalSales:   o.TotalSales(),
		Profit:       o.Profit(),
		Urgent:       projection.Urgent,
	}
	for _, line := range lines {
		out.Lines = append(out.Lines, OrderLine{
			Product:   line.Product.Name,
			Quantity:  line.Quantity.Value(),
			UnitCost:  line.Product.Cost,
			UnitPrice: line.Product.Price,
		})
	}
	return out
}

// FromListing maps a filtered order read to its transport page.
func FromListing(listing *types.OrderListing) OrderPage {
	if listing == nil {
		return OrderPage{Items: []Order{}}
	}
	items := make([]Order, 0, len(listing.Orders))
	for _, projection := range listing.Orders {
		items = append(items, FromProjection(projection))
	}
	return OrderPage{Items: items, Total: listing.Total}
}
