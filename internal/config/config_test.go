package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
	require.Equal(t, DriverMongo, cfg.Database.Driver)
	require.Empty(t, cfg.Database.URL)
	require.Equal(t, 10*time.Second, cfg.Database.Timeout)
	require.False(t, cfg.Cache.Enabled)
	require.False(t, cfg.RateLimit.Enabled)
	require.Empty(t, cfg.RedisAddr())
	require.Empty(t, cfg.Log.File)
	require.Equal(t, 100, cfg.Log.MaxSizeMB)
	require.Equal(t, 3, cfg.Log.MaxBackups)
	require.Equal(t, "strnadel-api", cfg.Tracing.ServiceName)
	require.Empty(t, cfg.Tracing.OTLPEndpoint)
	require.InDelta(t, 1.0, cfg.Tracing.SamplingRate, 0.0001)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "strnadel")
	t.Setenv("DATABASE_DRIVER", "Memory")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("LOG_FILE", "/var/log/strnadel/api.log")
	t.Setenv("LOG_FILE_COMPRESS", "true")
	t.Setenv("TRACING_OTLP_ENDPOINT", "otel-collector:4318")
	t.Setenv("TRACING_SAMPLING_RATE", "0.25")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "strnadel", cfg.Database.Name)
	require.Equal(t, DriverMemory, cfg.Database.Driver)
	require.Equal(t, "localhost:6379", cfg.RedisAddr())
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 5*time.Second, cfg.Cache.TTL)
	require.True(t, cfg.RateLimit.Enabled)
	require.InDelta(t, 0.5, cfg.RateLimit.RPS, 0.0001)
	require.Equal(t, "/var/log/strnadel/api.log", cfg.Log.File)
	require.True(t, cfg.Log.Compress)
	require.Equal(t, "otel-collector:4318", cfg.Tracing.OTLPEndpoint)
	require.InDelta(t, 0.25, cfg.Tracing.SamplingRate, 0.0001)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	_, err := LoadConfig()
	require.Error(t, err)
}
