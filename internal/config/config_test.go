package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "ambusos", cfg.Database.Database)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Cache.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AMBUSOS_SERVER_PORT", "9090")
	t.Setenv("AMBUSOS_DATABASE_DRIVER", "sqlite")
	t.Setenv("AMBUSOS_DATABASE_SQLITE_PATH", "/tmp/ambusos.db")
	t.Setenv("AMBUSOS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/ambusos.db", cfg.Database.SQLitePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid postgres",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "unsupported database driver",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Database.Driver = "sqlite"
				c.Database.SQLitePath = ""
			},
			wantErr: "sqlite_path is required",
		},
		{
			name: "cache without capacity",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.MemorySize = 0
			},
			wantErr: "memory_size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Port: 8080},
				Database: DatabaseConfig{Driver: "postgres", Host: "localhost", SQLitePath: "data/a.db"},
				Cache:    CacheConfig{MemorySize: 256},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db.internal", Port: 5432, Database: "ambusos",
		Username: "svc", Password: "pw", SSLMode: "require",
	}
	assert.Equal(t, "postgres://svc:pw@db.internal:5432/ambusos?sslmode=require", cfg.URL())
}
