package types

import (
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
)

// OrderProjection transports an order copy together with read-time flags.
type OrderProjection struct {
	Order  *orders.Order
	Urgent bool
}

// OrderListing is one consistent read of the orders matching a filter together with the size
// of the whole order list.
type OrderListing struct {
	Orders []*OrderProjection
	Total  int
}
