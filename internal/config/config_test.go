package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("IS_PROD", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_USER", "wallet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "creator_wallet")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("CACHE_TTL_SECONDS", "15")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.Equal(t, 15*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "wallet:secret@tcp(db:3306)/creator_wallet?parseTime=true", cfg.DSN())
}

func TestCacheTTLRejectsNonPositive(t *testing.T) {
	for _, raw := range []string{"0", "-5", "abc"} {
		assert.Equal(t, 60*time.Second, cacheTTL(raw), raw)
	}
}
