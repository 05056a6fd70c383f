package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "REGISTRY_STORE", "REGISTRY_DATA_PATH", "POSTGRES_DSN", "REGISTRY_EXPORT_PATH", "REGISTRY_URGENT_DAYS", "REGISTRY_AUTOSAVE"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, "data/registry.json", cfg.DataPath)
	assert.Equal(t, "data/completed_orders.csv", cfg.ExportPath)
	assert.Equal(t, 3, cfg.UrgentDays)
	assert.True(t, cfg.Autosave)
}

func TestLoadConfig_SQLiteDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGISTRY_STORE", "SQLite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "data/registry.db", cfg.DataPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REGISTRY_DATA_PATH", "/tmp/book.json")
	t.Setenv("REGISTRY_URGENT_DAYS", "5")
	t.Setenv("REGISTRY_AUTOSAVE", "no")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/book.json", cfg.DataPath)
	assert.Equal(t, 5, cfg.UrgentDays)
	assert.False(t, cfg.Autosave)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":        {"REGISTRY_STORE": "redis"},
		"postgres without dsn": {"REGISTRY_STORE": "postgres"},
		"negative urgent days": {"REGISTRY_URGENT_DAYS": "-1"},
		"non numeric urgent":   {"REGISTRY_URGENT_DAYS": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " True "} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "off"} {
		assert.False(t, isTruthy(v), v)
	}
}
