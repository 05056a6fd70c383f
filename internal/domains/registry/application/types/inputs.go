package types

// PersonInput carries the raw fields of a customer record.
type PersonInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Remark  string
	Tags    []string
}

// EditPersonInput replaces the customer named Target.
type EditPersonInput struct {
	Target string
	Person PersonInput
}

// ProductInput carries the raw fields of a menu entry. Empty amounts default to zero.
type ProductInput struct {
	Name  string
	Cost  string
	Price string
}

// EditProductInput replaces the menu entry named Target.
type EditProductInput struct {
	Target  string
	Product ProductInput
}

// OrderItemInput is one product line of a new order.
type OrderItemInput struct {
	Product  string
	Quantity int
}

// CreateOrderInput opens an order for an existing customer, found by phone first and then by name.
type CreateOrderInput struct {
	CustomerPhone string
	CustomerName  string
	Deadline      string
	Items         []OrderItemInput
}

// EditOrderInput sets the quantity of one product; zero removes it.
type EditOrderInput struct {
	OrderID  int
	Product  string
	Quantity int
}

// SetDeadlineInput sets or overwrites an order deadline.
type SetDeadlineInput struct {
	OrderID  int
	Deadline string
}

// PersonFilter narrows the customer view. Zero values match everything; Phone matches exactly.
type PersonFilter struct {
	Keywords []string
	Tag      string
	Phone    string
}

// ProductFilter narrows the menu view.
type ProductFilter struct {
	Keywords []string
}

// OrderFilter narrows the order view. Zero values match everything.
type OrderFilter struct {
	Stage        string
	CustomerName string
	Product      string
	UrgentOnly   bool
}
