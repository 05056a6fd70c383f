package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/domains/registry/adapters/export/csvfile"
	"github.com/Apurer/order-registry/internal/domains/registry/application"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
	platformobservability "github.com/Apurer/order-registry/internal/platform/observability"
)

func testInstruments(t *testing.T) *platformobservability.Instruments {
	t.Helper()
	instruments, shutdown, err := platformobservability.Init(context.Background(), platformobservability.Settings{
		ServiceName:   "archiver-test",
		TraceExporter: "none",
		LogOutput:     &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return instruments
}

func completedOrderService(t *testing.T, opts ...application.Option) *application.Service {
	t.Helper()
	ctx := context.Background()
	opts = append([]application.Option{application.WithClock(func() time.Time {
		return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	})}, opts...)
	svc := application.NewService(nil, opts...)
	_, err := svc.AddPerson(ctx, types.PersonInput{Name: "Alice", Phone: "98765432"})
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, types.ProductInput{Name: "Cupcake", Cost: "1.50", Price: "3.00"})
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, types.CreateOrderInput{CustomerName: "Alice", Items: []types.OrderItemInput{{Product: "Cupcake", Quantity: 1}}})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.AdvanceOrderStage(ctx, order.Order.ID())
		require.NoError(t, err)
	}
	return svc
}

func TestArchive_ReportsExportFailure(t *testing.T) {
	// A directory cannot be opened for appending.
	svc := completedOrderService(t, application.WithExporter(csvfile.NewExporter(t.TempDir())))

	err := archive(context.Background(), svc, testInstruments(t), "unused")
	require.Error(t, err)

	size, sizeErr := svc.OrderListSize(context.Background())
	require.NoError(t, sizeErr)
	assert.Equal(t, 1, size)
}

func TestArchive_ReportsMissingExporter(t *testing.T) {
	svc := completedOrderService(t)

	err := archive(context.Background(), svc, testInstruments(t), "unused")
	assert.ErrorIs(t, err, application.ErrNoExporter)
}

func TestArchive_WritesCompletedOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completed.csv")
	svc := completedOrderService(t, application.WithExporter(csvfile.NewExporter(path)))

	require.NoError(t, archive(context.Background(), svc, testInstruments(t), path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,Alice,98765432,Cupcake x 1")
}
