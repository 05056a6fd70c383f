package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_EmptyDatabaseReportsNoSnapshot(t *testing.T) {
	_, err := newTestStore(t).Load(context.Background())
	require.ErrorIs(t, err, ports.ErrNoSnapshot)
}

func TestStore_SaveOverwritesBuckets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &ports.Snapshot{
		Persons:  []ports.PersonRecord{{Name: "Alice", Phone: "98765432", Tags: []string{"vip"}}},
		Products: []ports.ProductRecord{{Name: "Cupcake", Cost: decimal.RequireFromString("1.50"), Price: decimal.RequireFromString("3.00")}},
		Orders:   []ports.OrderRecord{{ID: 1, ProductMap: map[string]int{"Cupcake": 2}, CustomerName: "Alice", CustomerPhone: "98765432", CreationDate: "01/03/2024", Stage: "Created"}},
	}
	require.NoError(t, store.Save(ctx, first))

	second := &ports.Snapshot{
		Persons: []ports.PersonRecord{{Name: "Bob", Phone: "12345678"}},
	}
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Persons, 1)
	assert.Equal(t, "Bob", loaded.Persons[0].Name)
	assert.Empty(t, loaded.Products)
	assert.Empty(t, loaded.Orders)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &ports.Snapshot{
		Orders: []ports.OrderRecord{{ID: 7, Stage: "Completed", CreationDate: "01/03/2024"}},
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	loaded, err := reopened.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, 7, loaded.Orders[0].ID)
	assert.Equal(t, "Completed", loaded.Orders[0].Stage)
}
