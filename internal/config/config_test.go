package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "game-catalog", cfg.AppName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())

	assert.Equal(t, "postgres://catalog_user:@localhost:5432/catalog_db?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)

	assert.Equal(t, "./data/outbox.db", cfg.Outbox.Path)
	assert.Equal(t, "catalog.events", cfg.Outbox.Channel)
	assert.Equal(t, 10*time.Second, cfg.Outbox.SyncInterval)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, 3, cfg.Outbox.MaxRetry)
	assert.Equal(t, 24, cfg.Outbox.RetentionHours)

	assert.Equal(t, time.Minute, cfg.Cache.RankingTTL)
	assert.True(t, cfg.Migrations.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/games?sslmode=require")
	t.Setenv("OUTBOX_SYNC_INTERVAL", "30s")
	t.Setenv("OUTBOX_BATCH_SIZE", "10")
	t.Setenv("RANKING_CACHE_TTL", "5m")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/games?sslmode=require", cfg.Database.URL)
	assert.Equal(t, 30*time.Second, cfg.Outbox.SyncInterval)
	assert.Equal(t, 10, cfg.Outbox.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Cache.RankingTTL)
	assert.False(t, cfg.Migrations.Enabled)
}

func TestGetDuration_BareSecondsAreAccepted(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Context.RequestTimeout)
}
