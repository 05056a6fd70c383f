//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	registrypostgres "github.com/Apurer/order-registry/internal/domains/registry/adapters/persistence/postgres"
	"github.com/Apurer/order-registry/internal/domains/registry/ports"
	"github.com/Apurer/order-registry/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("registry_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestPostgresStore_EmptyReportsNoSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	_, err := registrypostgres.NewStore(db).Load(context.Background())
	require.ErrorIs(t, err, ports.ErrNoSnapshot)
}

func TestPostgresStore_SaveReplacesSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := registrypostgres.NewStore(db)
	ctx := context.Background()
	sales := decimal.RequireFromString("6.00")

	first := &ports.Snapshot{
		Persons: []ports.PersonRecord{
			{Name: "Alice", Phone: "98765432", Tags: []string{"vip"}},
			{Name: "Bob", Phone: "12345678"},
		},
		Products: []ports.ProductRecord{{Name: "Cupcake", Cost: decimal.RequireFromString("1.50"), Price: decimal.RequireFromString("3.00")}},
		Orders: []ports.OrderRecord{
			{ID: 1, ProductMap: map[string]int{"Cupcake": 2}, CustomerName: "Alice", CustomerPhone: "98765432", CreationDate: "01/03/2024", Stage: "Created", TotalSales: &sales},
			{ID: 2, ProductMap: map[string]int{}, CustomerName: "Bob", CustomerPhone: "12345678", CreationDate: "01/03/2024", Stage: "Completed"},
		},
	}
	require.NoError(t, store.Save(ctx, first))

	second := &ports.Snapshot{
		Persons:  first.Persons[:1],
		Products: first.Products,
		Orders:   first.Orders[:1],
	}
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Persons, 1)
	assert.Equal(t, []string{"vip"}, loaded.Persons[0].Tags)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, map[string]int{"Cupcake": 2}, loaded.Orders[0].ProductMap)
	require.NotNil(t, loaded.Orders[0].TotalSales)
	assert.True(t, sales.Equal(*loaded.Orders[0].TotalSales))
	assert.Nil(t, loaded.Orders[0].TotalCost)
	assert.True(t, decimal.RequireFromString("3").Equal(loaded.Products[0].Price))
}
