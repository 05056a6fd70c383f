package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

func TestNewPerson_Valid(t *testing.T) {
	p, err := NewPerson(" Alice Pauline ", "98765432", "alice@example.com", "123, Jurong West Ave 6", "likes cupcakes", []string{"friends", "vip", "friends"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Pauline", p.Name())
	assert.Equal(t, "98765432", p.Phone())
	assert.Equal(t, []string{"friends", "vip"}, p.Tags())
	assert.True(t, p.HasTag("vip"))
	assert.False(t, p.HasTag("colleagues"))
}

func TestNewPerson_OptionalFields(t *testing.T) {
	p, err := NewPerson("Bob", "123", "", "", "", nil)
	require.NoError(t, err)
	assert.Empty(t, p.Email())
	assert.Nil(t, p.Tags())
}

func TestNewPerson_InvalidFields(t *testing.T) {
	cases := []struct {
		name    string
		person  func() (Person, error)
		wantErr error
	}{
		{"blank name", func() (Person, error) { return NewPerson("  ", "123", "", "", "", nil) }, ErrInvalidName},
		{"symbol name", func() (Person, error) { return NewPerson("Al*ce", "123", "", "", "", nil) }, ErrInvalidName},
		{"short phone", func() (Person, error) { return NewPerson("Alice", "12", "", "", "", nil) }, ErrInvalidPhone},
		{"letters in phone", func() (Person, error) { return NewPerson("Alice", "91a34", "", "", "", nil) }, ErrInvalidPhone},
		{"bad email", func() (Person, error) { return NewPerson("Alice", "123", "alice.example.com", "", "", nil) }, ErrInvalidEmail},
		{"bad tag", func() (Person, error) { return NewPerson("Alice", "123", "", "", "", []string{"best friend"}) }, ErrInvalidTagName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.person()
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, domainerrors.ErrInvalidField)
		})
	}
}

func TestPerson_IdentityAndEquality(t *testing.T) {
	a, _ := NewPerson("Alice", "98765432", "", "", "", []string{"b", "a"})
	b, _ := NewPerson("Alice", "11111111", "", "", "", []string{"a", "b"})
	c, _ := NewPerson("Alice", "98765432", "", "", "", []string{"a", "b"})

	assert.True(t, a.IsSamePerson(b))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(c), "tag order must not matter")

	remarked := a.WithRemark("allergic to nuts")
	assert.Equal(t, "allergic to nuts", remarked.Remark())
	assert.Empty(t, a.Remark())
	assert.True(t, remarked.IsSamePerson(a))
}

func TestUniquePersonList(t *testing.T) {
	list := NewUniquePersonList()
	alice, _ := NewPerson("Alice", "98765432", "", "", "", nil)
	bob, _ := NewPerson("Bob", "87654321", "", "", "", nil)
	require.NoError(t, list.Add(alice))
	require.NoError(t, list.Add(bob))

	dup, _ := NewPerson("Alice", "00000", "", "", "", nil)
	require.ErrorIs(t, list.Add(dup), ErrDuplicatePerson)

	found, ok := list.FindByPhone("87654321")
	require.True(t, ok)
	assert.True(t, found.Equal(bob))

	_, ok = list.FindByPhone("000")
	assert.False(t, ok)

	renamed, _ := NewPerson("Bobby", "87654321", "", "", "", nil)
	require.NoError(t, list.Edit(bob, renamed))
	require.ErrorIs(t, list.Edit(renamed, alice), ErrDuplicatePerson)
	require.ErrorIs(t, list.Delete(bob), ErrPersonNotFound)

	got, err := list.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Bobby", got.Name())

	stored, ok := list.Lookup(alice)
	require.True(t, ok)
	assert.True(t, stored.Equal(alice))

	require.ErrorIs(t, list.ReplaceAll([]Person{alice, dup}), ErrDuplicatePerson)
	assert.Equal(t, 2, list.Len())
}
