package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-olshansky/bakery-pos/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "MIGRATIONS_PATH",
	} {
		os.Unsetenv(key)
	}

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "postgres", cfg.Postgres.User)
	assert.Equal(t, "bakery_pos", cfg.Postgres.DBName)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsPath)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.MaxConnLifetime)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "pos_test")
	t.Setenv("DB_MAX_CONN_LIFETIME", "5m")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "pos_test", cfg.Postgres.DBName)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.MaxConnLifetime)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	_, err := config.Load("does-not-exist.env")
	assert.NoError(t, err)
}
