package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

func TestStore_MissingFileReportsNoSnapshot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "registry.json"))
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ports.ErrNoSnapshot)
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	store := NewStore(path)
	sales := decimal.RequireFromString("6.00")
	snap := &ports.Snapshot{
		Persons:  []ports.PersonRecord{{Name: "Alice", Phone: "98765432"}},
		Products: []ports.ProductRecord{{Name: "Cupcake", Cost: decimal.RequireFromString("1.5"), Price: decimal.RequireFromString("3")}},
		Orders: []ports.OrderRecord{{
			ID:            1,
			ProductMap:    map[string]int{"Cupcake": 2},
			CustomerName:  "Alice",
			CustomerPhone: "98765432",
			CreationDate:  "01/03/2024",
			Stage:         "Created",
			TotalSales:    &sales,
		}},
	}
	require.NoError(t, store.Save(context.Background(), snap))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, map[string]int{"Cupcake": 2}, loaded.Orders[0].ProductMap)
	require.NotNil(t, loaded.Orders[0].TotalSales)
	assert.True(t, sales.Equal(*loaded.Orders[0].TotalSales))
	assert.Nil(t, loaded.Orders[0].TotalCost)
	assert.True(t, decimal.RequireFromString("3").Equal(loaded.Products[0].Price))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestStore_ReadsHandWrittenRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	raw := `{"persons":[],"products":[],"orders":[{"id":3,"productMap":{"Cupcake":1},"customerName":"Alice","customerPhone":"98765432","creationDate":"01/03/2024","deadline":"31/02/2024","stage":"Shipped"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	loaded, err := NewStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, "Shipped", loaded.Orders[0].Stage)
	assert.Equal(t, "31/02/2024", loaded.Orders[0].Deadline)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrNoSnapshot)
}
