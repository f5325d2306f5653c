package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burgerpos/internal/config"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "produtos", cfg.CatalogKey)
	assert.Equal(t, "pedidos", cfg.OrdersKey)
	assert.Equal(t, 12*time.Hour, cfg.CartTTL)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.BackupEnabled)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location.String())
	assert.Equal(t, cfg.Location, cfg.Now().Location())
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"unknown driver":       {"STORAGE_DRIVER": "cassandra"},
		"same keys":            {"ORDERS_KEY": "produtos"},
		"empty key":            {"CATALOG_KEY": ""},
		"backup sans password": {"BACKUP_ENABLED": true},
		"bad timezone":         {"TIMEZONE": "Mars/Olympus"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			v := newViper()
			for k, val := range overrides {
				v.Set(k, val)
			}
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "burgerpos.yaml")
	require.NoError(t, os.WriteFile(file, []byte("STORAGE_DRIVER: redis\nCART_TTL: 30m\nAPP_PORT: \":9000\"\n"), 0o600))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("APP_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverRedis, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.CartTTL)
	assert.Equal(t, ":9090", cfg.AppPort)
}
