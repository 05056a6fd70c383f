package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backends accepted by REGISTRY_STORE.
const (
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config carries environment-driven settings for the registry processes.
type Config struct {
	Port        string
	Store       string
	DataPath    string
	PostgresDSN string
	ExportPath  string
	UrgentDays  int
	Autosave    bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		Store:       strings.ToLower(envDefault("REGISTRY_STORE", StoreJSON)),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		ExportPath:  envDefault("REGISTRY_EXPORT_PATH", "data/completed_orders.csv"),
		UrgentDays:  3,
		Autosave:    true,
	}
	switch cfg.Store {
	case StoreJSON:
		cfg.DataPath = envDefault("REGISTRY_DATA_PATH", "data/registry.json")
	case StoreSQLite:
		cfg.DataPath = envDefault("REGISTRY_DATA_PATH", "data/registry.db")
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when REGISTRY_STORE=postgres")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("REGISTRY_STORE must be one of json, sqlite, postgres, memory")
	}
	if raw := strings.TrimSpace(os.Getenv("REGISTRY_URGENT_DAYS")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return Config{}, fmt.Errorf("REGISTRY_URGENT_DAYS must be a non-negative integer")
		}
		cfg.UrgentDays = days
	}
	if raw := strings.TrimSpace(os.Getenv("REGISTRY_AUTOSAVE")); raw != "" {
		cfg.Autosave = isTruthy(raw)
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
