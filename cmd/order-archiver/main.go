package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/order-registry/internal/app/api"
	registryports "github.com/Apurer/order-registry/internal/domains/registry/ports"
	platformobservability "github.com/Apurer/order-registry/internal/platform/observability"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := run(ctx); err != nil {
		cancel()
		log.Fatalf("order archive failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// The archiver always saves after clearing, whatever the API process uses.
	cfg.Autosave = true

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:   "order-archiver",
		TraceExporter: "none",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	service, cleanup, err := api.OpenRegistry(ctx, cfg, instruments)
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	defer cleanup()

	return archive(ctx, service, instruments, cfg.ExportPath)
}

func archive(ctx context.Context, service registryports.Service, instruments *platformobservability.Instruments, exportPath string) error {
	archived, err := service.ArchiveCompletedOrders(ctx)
	if err != nil {
		return fmt.Errorf("archive completed orders: %w", err)
	}
	remaining, err := service.OrderListSize(ctx)
	if err != nil {
		return fmt.Errorf("count remaining orders: %w", err)
	}
	attrs := []any{
		slog.Int("archived", archived),
		slog.Int("remaining", remaining),
		slog.String("export_path", exportPath),
	}
	if totals, err := instruments.CounterTotals(ctx); err == nil {
		for name, value := range totals {
			attrs = append(attrs, slog.Int64(name, value))
		}
	}
	instruments.Logger.Info("order archive completed", attrs...)
	return nil
}
