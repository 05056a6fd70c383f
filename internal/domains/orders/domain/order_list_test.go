package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

func TestOrderList_AddAssignsMonotonicIDs(t *testing.T) {
	list := NewOrderList()

	first, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)
	second, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID())
	assert.Equal(t, 2, second.ID())

	require.NoError(t, list.Remove(2))
	third, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID(), "ids of removed orders are never reissued")
}

func TestOrderList_AddRejectsDuplicateID(t *testing.T) {
	list := NewOrderList()
	_, err := list.Add(NewOrder(5, created))
	require.NoError(t, err)

	_, err = list.Add(NewOrder(5, created))
	require.ErrorIs(t, err, ErrDuplicateOrder)
	require.ErrorIs(t, err, domainerrors.ErrDuplicateEntity)
	assert.Equal(t, 1, list.Size())
	assert.Equal(t, 6, list.NextID())
}

func TestOrderList_ReturnsCopies(t *testing.T) {
	list := NewOrderList()
	added, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)

	added.SetQuantity(mustProduct(t, "Cupcake", "1", "2"), mustQuantity(t, 3))
	got, err := list.Get(added.ID())
	require.NoError(t, err)
	assert.Empty(t, got.Lines())
}

func TestOrderList_EditProductQuantity(t *testing.T) {
	list := NewOrderList()
	added, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)

	updated, err := list.EditProductQuantity(added.ID(), mustProduct(t, "Cupcake", "1.50", "3.00"), mustQuantity(t, 2))
	require.NoError(t, err)
	assert.True(t, dec("6.00").Equal(updated.TotalSales()))

	_, err = list.EditProductQuantity(99, mustProduct(t, "Cupcake", "1.50", "3.00"), mustQuantity(t, 2))
	require.ErrorIs(t, err, ErrOrderNotFound)
	require.ErrorIs(t, err, domainerrors.ErrEntityNotFound)
}

func TestOrderList_AdvanceStageIsAllOrNothing(t *testing.T) {
	list := NewOrderList()
	added, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := list.AdvanceStage(added.ID())
		require.NoError(t, err)
	}
	_, err = list.AdvanceStage(added.ID())
	require.ErrorIs(t, err, ErrTerminalStage)

	got, err := list.Get(added.ID())
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, got.Stage())
}

func TestOrderList_ClearCompleted(t *testing.T) {
	list := NewOrderList()
	done, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)
	open, err := list.Add(NewOrder(0, created))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := list.AdvanceStage(done.ID())
		require.NoError(t, err)
	}

	list.ClearCompleted()

	assert.False(t, list.Exists(done.ID()))
	assert.True(t, list.Exists(open.ID()))
	assert.Equal(t, 1, list.Size())
}

func TestOrderList_RefreshCustomer(t *testing.T) {
	alice := mustPerson(t, "Alice", "98765432")
	bob := mustPerson(t, "Bob", "12345678")
	list := NewOrderList()

	aliceOrder := NewOrder(0, created)
	aliceOrder.AttachCustomer(alice)
	a, err := list.Add(aliceOrder)
	require.NoError(t, err)
	bobOrder := NewOrder(0, created)
	bobOrder.AttachCustomer(bob)
	b, err := list.Add(bobOrder)
	require.NoError(t, err)

	list.RefreshCustomer(alice, mustPerson(t, "Alice", "11112222"))

	gotA, err := list.Get(a.ID())
	require.NoError(t, err)
	assert.Equal(t, "11112222", gotA.Customer().Phone())
	gotB, err := list.Get(b.ID())
	require.NoError(t, err)
	assert.Equal(t, "12345678", gotB.Customer().Phone())
}

func TestOrderList_SetOrder(t *testing.T) {
	list := NewOrderList()
	_, err := list.Add(NewOrder(1, created))
	require.NoError(t, err)
	_, err = list.Add(NewOrder(2, created))
	require.NoError(t, err)

	require.ErrorIs(t, list.SetOrder(1, NewOrder(2, created)), ErrDuplicateOrder)
	require.ErrorIs(t, list.SetOrder(9, NewOrder(9, created)), ErrOrderNotFound)

	replacement := NewOrder(1, created)
	replacement.SetQuantity(mustProduct(t, "Cupcake", "1", "2"), mustQuantity(t, 1))
	require.NoError(t, list.SetOrder(1, replacement))
	got, err := list.FindByIndex(0)
	require.NoError(t, err)
	assert.Len(t, got.Lines(), 1)

	_, err = list.FindByIndex(2)
	require.ErrorIs(t, err, domainerrors.ErrIndexOutOfRange)
}

func TestOrderList_ReplaceAll(t *testing.T) {
	list := NewOrderList()
	err := list.ReplaceAll([]*Order{NewOrder(4, created), NewOrder(4, created)})
	require.ErrorIs(t, err, ErrDuplicateOrder)
	assert.Equal(t, 0, list.Size())

	require.NoError(t, list.ReplaceAll([]*Order{NewOrder(4, created), NewOrder(9, created)}))
	assert.Equal(t, 2, list.Size())
	assert.Equal(t, 10, list.NextID())
}
