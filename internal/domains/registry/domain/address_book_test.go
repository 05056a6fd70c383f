package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var today = orders.CreationDateOf(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

func person(t *testing.T, name, phone string) customers.Person {
	t.Helper()
	p, err := customers.NewPerson(name, phone, "", "", "", nil)
	require.NoError(t, err)
	return p
}

func product(t *testing.T, name, cost, price string) catalog.Product {
	t.Helper()
	p, err := catalog.ParseProduct(name, cost, price)
	require.NoError(t, err)
	return p
}

func qty(t *testing.T, n int) orders.Quantity {
	t.Helper()
	q, err := orders.NewQuantity(n)
	require.NoError(t, err)
	return q
}

func TestAddressBook_CupcakeScenario(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	cupcake := product(t, "Cupcake", "1.50", "3.00")
	require.NoError(t, book.AddPerson(alice))
	require.NoError(t, book.AddProduct(cupcake))

	order, err := book.AddOrder(orders.NewOrder(0, today), alice)
	require.NoError(t, err)
	order, err = book.EditOrder(order.ID(), cupcake, qty(t, 2))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("3.00").Equal(order.TotalCost()))
	assert.True(t, decimal.RequireFromString("6.00").Equal(order.TotalSales()))
	assert.True(t, decimal.RequireFromString("3.00").Equal(order.Profit()))
	assert.Equal(t, "Created", order.StageContext().String())
	assert.Equal(t, "Alice", order.Customer().Name())

	order, err = book.AdvanceOrderStage(order.ID())
	require.NoError(t, err)
	assert.Equal(t, "InProgress", order.StageContext().String())

	order, err = book.EditOrder(order.ID(), cupcake, qty(t, 0))
	require.NoError(t, err)
	assert.Empty(t, order.ProductMap())
	assert.True(t, order.TotalCost().IsZero())
	assert.True(t, order.TotalSales().IsZero())

	for i := 0; i < 2; i++ {
		_, err = book.AdvanceOrderStage(order.ID())
		require.NoError(t, err)
	}
	_, err = book.AdvanceOrderStage(order.ID())
	require.ErrorIs(t, err, orders.ErrTerminalStage)
}

func TestAddressBook_AddOrderRequiresKnownPerson(t *testing.T) {
	book := NewAddressBook()

	_, err := book.AddOrder(orders.NewOrder(0, today), person(t, "Ghost", "000"))
	require.ErrorIs(t, err, customers.ErrPersonNotFound)
	require.ErrorIs(t, err, domainerrors.ErrEntityNotFound)
	assert.Equal(t, 0, book.OrderListSize())
}

func TestAddressBook_EditPersonRefreshesEveryReferencingOrder(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	bob := person(t, "Bob", "12345678")
	require.NoError(t, book.AddPerson(alice))
	require.NoError(t, book.AddPerson(bob))

	var aliceIDs []int
	for i := 0; i < 3; i++ {
		o, err := book.AddOrder(orders.NewOrder(0, today), alice)
		require.NoError(t, err)
		aliceIDs = append(aliceIDs, o.ID())
	}
	bobOrder, err := book.AddOrder(orders.NewOrder(0, today), bob)
	require.NoError(t, err)
	deadline, err := orders.NewDeadline("10/03/2024")
	require.NoError(t, err)
	_, err = book.EditOrderDeadline(aliceIDs[0], deadline)
	require.NoError(t, err)

	edited := person(t, "Alice", "11110000")
	require.NoError(t, book.EditPerson(alice, edited))

	for _, id := range aliceIDs {
		o, err := book.GetOrder(id)
		require.NoError(t, err)
		assert.Equal(t, "11110000", o.Customer().Phone())
	}
	first, err := book.GetOrder(aliceIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "10/03/2024", first.DeadlineString())

	other, err := book.GetOrder(bobOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, "12345678", other.Customer().Phone())
}

func TestAddressBook_FailedPersonEditChangesNothing(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	bob := person(t, "Bob", "12345678")
	require.NoError(t, book.AddPerson(alice))
	require.NoError(t, book.AddPerson(bob))
	o, err := book.AddOrder(orders.NewOrder(0, today), alice)
	require.NoError(t, err)

	err = book.EditPerson(alice, person(t, "Bob", "555"))
	require.ErrorIs(t, err, customers.ErrDuplicatePerson)

	got, err := book.GetOrder(o.ID())
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Customer().Name())
	assert.Equal(t, "98765432", got.Customer().Phone())
}

func TestAddressBook_ProductChangesDoNotCascade(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	cupcake := product(t, "Cupcake", "1.50", "3.00")
	require.NoError(t, book.AddPerson(alice))
	require.NoError(t, book.AddProduct(cupcake))
	o, err := book.AddOrder(orders.NewOrder(0, today), alice)
	require.NoError(t, err)
	_, err = book.EditOrder(o.ID(), cupcake, qty(t, 2))
	require.NoError(t, err)

	require.NoError(t, book.EditProduct(cupcake, product(t, "Cupcake", "2.00", "9.00")))
	got, err := book.GetOrder(o.ID())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("6.00").Equal(got.TotalSales()))

	require.NoError(t, book.DeleteProduct(cupcake))
	assert.Equal(t, -1, book.FindProductByName("Cupcake"))
	got, err = book.GetOrder(o.ID())
	require.NoError(t, err)
	assert.Contains(t, got.ProductMap(), "Cupcake")
}

func TestAddressBook_ClearCompletedOrders(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	require.NoError(t, book.AddPerson(alice))

	var ids []int
	for i := 0; i < 3; i++ {
		o, err := book.AddOrder(orders.NewOrder(0, today), alice)
		require.NoError(t, err)
		ids = append(ids, o.ID())
	}
	for i := 0; i < 3; i++ {
		_, err := book.AdvanceOrderStage(ids[1])
		require.NoError(t, err)
	}
	_, err := book.AdvanceOrderStage(ids[2])
	require.NoError(t, err)

	book.ClearCompletedOrders()

	assert.True(t, book.HasOrder(ids[0]))
	assert.False(t, book.HasOrder(ids[1]))
	assert.True(t, book.HasOrder(ids[2]))
	remaining, err := book.FindOrderByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, ids[2], remaining.ID())
	assert.Equal(t, "InProgress", remaining.StageContext().String())
}

func TestAddressBook_ResetDataIsAllOrNothing(t *testing.T) {
	book := NewAddressBook()
	alice := person(t, "Alice", "98765432")
	require.NoError(t, book.AddPerson(alice))

	err := book.ResetData(Contents{
		Persons:  []customers.Person{person(t, "Bob", "123")},
		Products: []catalog.Product{product(t, "Cupcake", "1", "2"), product(t, "Cupcake", "3", "4")},
	})
	require.ErrorIs(t, err, catalog.ErrDuplicateProduct)
	assert.True(t, book.HasPerson(alice))

	require.NoError(t, book.ResetData(Contents{
		Persons:  []customers.Person{person(t, "Bob", "123")},
		Products: []catalog.Product{product(t, "Cupcake", "1", "2")},
		Orders:   []*orders.Order{orders.NewOrder(4, today)},
	}))
	assert.False(t, book.HasPerson(alice))
	assert.Equal(t, 1, book.OrderListSize())
	assert.Equal(t, 5, book.NextOrderID())
	assert.Len(t, book.Contents().Products, 1)
}

func TestAddressBook_FindPersonByPhone(t *testing.T) {
	book := NewAddressBook()
	require.NoError(t, book.AddPerson(person(t, "Alice", "98765432")))

	found, ok := book.FindPersonByPhone("98765432")
	require.True(t, ok)
	assert.Equal(t, "Alice", found.Name())

	_, ok = book.FindPersonByPhone("0000")
	assert.False(t, ok)
}
