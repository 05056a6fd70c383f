package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Apurer/order-registry/internal/domains/registry/adapters/export/csvfile"
	registryhandlers "github.com/Apurer/order-registry/internal/domains/registry/adapters/http/handlers"
	registrymemory "github.com/Apurer/order-registry/internal/domains/registry/adapters/memory"
	registryobs "github.com/Apurer/order-registry/internal/domains/registry/adapters/observability"
	"github.com/Apurer/order-registry/internal/domains/registry/adapters/persistence/jsonfile"
	registrypostgres "github.com/Apurer/order-registry/internal/domains/registry/adapters/persistence/postgres"
	"github.com/Apurer/order-registry/internal/domains/registry/adapters/persistence/sqlite"
	registryapp "github.com/Apurer/order-registry/internal/domains/registry/application"
	registryports "github.com/Apurer/order-registry/internal/domains/registry/ports"
	"github.com/Apurer/order-registry/internal/platform/migrations"
	platformobservability "github.com/Apurer/order-registry/internal/platform/observability"
	platformpostgres "github.com/Apurer/order-registry/internal/platform/postgres"
)

const serviceName = "order-registry-api"

// Run boots the registry HTTP API with observability and the configured snapshot store.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanup, err := OpenRegistry(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	router := registryhandlers.NewRouter(serviceName, registryhandlers.NewRegistryAPI(service), logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("registry API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("registry API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown registry API: %w", err)
	}
	if err := service.Save(shutdownCtx); err != nil {
		logger.Error("final snapshot save failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("registry API stopped")
	return nil
}

// OpenRegistry builds the snapshot store named by cfg, wraps the registry service with
// observability and loads the stored snapshot. The cleanup releases the store.
func OpenRegistry(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (registryports.Service, func(), error) {
	logger := instruments.Logger
	store, cleanup, err := buildSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	core := registryapp.NewService(
		store,
		registryapp.WithExporter(csvfile.NewExporter(cfg.ExportPath)),
		registryapp.WithUrgentDays(cfg.UrgentDays),
		registryapp.WithAutosave(cfg.Autosave),
	)
	service := registryobs.New(
		core,
		registryobs.WithLogger(logger),
		registryobs.WithTracer(instruments.Tracer("internal.registry.application")),
		registryobs.WithMeter(instruments.Meter("internal.registry.application")),
	)
	if err := service.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load registry snapshot: %w", err)
	}
	return service, cleanup, nil
}

func buildSnapshotStore(ctx context.Context, cfg Config, logger *slog.Logger) (registryports.SnapshotStore, func(), error) {
	switch cfg.Store {
	case StoreMemory:
		logger.Warn("registry configured with in-memory snapshots, data is lost on exit")
		return registrymemory.NewSnapshotStore(), func() {}, nil
	case StoreSQLite:
		store, err := sqlite.NewStore(cfg.DataPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite snapshot store: %w", err)
		}
		logger.Info("registry snapshots stored in sqlite", slog.String("path", store.Path()))
		return store, func() { _ = store.Close() }, nil
	case StorePostgres:
		db, closeDB, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Run(db); err != nil {
			_ = closeDB()
			return nil, nil, fmt.Errorf("migrate registry schema: %w", err)
		}
		logger.Info("registry snapshots stored in postgres")
		return registrypostgres.NewStore(db), func() { _ = closeDB() }, nil
	default:
		store := jsonfile.NewStore(cfg.DataPath)
		logger.Info("registry snapshots stored in json file", slog.String("path", store.Path()))
		return store, func() {}, nil
	}
}
