package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENVIRONMENT", "AVALIACOES_DB_PATH", "STATIC_DIR", "BODY_LIMIT_BYTES", "CORS_ORIGINS", "RATE_LIMIT_RPS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "data/db.sqlite", cfg.DB.Path)
	require.Equal(t, "public", cfg.StaticDir)
	require.Equal(t, int64(1<<20), cfg.BodyLimitBytes)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, 0, cfg.RateLimitRPS)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("AVALIACOES_DB_PATH", "/var/lib/avaliacoes/db.sqlite")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RATE_LIMIT_RPS", "25")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("BODY_LIMIT_BYTES", "not-a-number")

	cfg := Load()
	require.Equal(t, ":8081", cfg.Addr())
	require.Equal(t, "/var/lib/avaliacoes/db.sqlite", cfg.DB.Path)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.Equal(t, 25, cfg.RateLimitRPS)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, int64(1<<20), cfg.BodyLimitBytes)
}
