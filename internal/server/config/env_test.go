package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withoutDotEnv(t *testing.T) {
	t.Helper()
	old := loadDotEnv
	loadDotEnv = func() {}
	t.Cleanup(func() { loadDotEnv = old })
}

func TestParseEnv_Overrides(t *testing.T) {
	withoutDotEnv(t)

	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FOLDER_PATH", "/data/files")
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("LOG_LEVEL", "debug")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@db:5432/x", c.DatabaseDSN)
	assert.Equal(t, "cache:6380", c.RedisAddr)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, "/data/files", c.StorageRoot)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, 8, c.WorkerConcurrency)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestParseEnv_AssemblesDSNFromParts(t *testing.T) {
	withoutDotEnv(t)

	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_DATABASE", "fm")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://postgres:postgres@pg:6543/fm?sslmode=disable", c.DatabaseDSN)
}

func TestParseEnv_RedisHostOnly(t *testing.T) {
	withoutDotEnv(t)

	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "cache:6379", c.RedisAddr)
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	withoutDotEnv(t)
	t.Setenv("WORKER_CONCURRENCY", "many")

	var c Config
	assert.Panics(t, func() { parseEnv(&c) })
}
