package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"GATE_HTTP_ADDR", "GATE_ENV", "GATE_ADMIN_TOKEN", "GATE_BLACKLIST_CODES",
		"GATE_DEFAULT_LOCATION", "GATE_SIMULATED_LATENCY", "REDIS_URL", "KAFKA_BROKERS",
		"GATE_AUDIT_BUFFER_SIZE", "GATE_AUDIT_FLUSH_INTERVAL", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"GATE_TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, EnvDev, cfg.Environment)
	assert.Equal(t, devAdminToken, cfg.AdminToken)
	assert.Equal(t, []string{"BLOCK123"}, cfg.Gate.BlacklistCodes)
	assert.Equal(t, "Main Gate", cfg.Gate.DefaultLocation)
	assert.Zero(t, cfg.Gate.SimulatedLatency)
	assert.Equal(t, 30, cfg.Gate.VerifyRateLimit)
	assert.Equal(t, time.Minute, cfg.Gate.VerifyRateWindow)
	assert.Empty(t, cfg.Gate.TrustedProxies)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 1024, cfg.Audit.BufferSize)
	assert.Equal(t, time.Second, cfg.Audit.FlushInterval)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GATE_HTTP_ADDR", ":9090")
	t.Setenv("GATE_ENV", "PROD")
	t.Setenv("GATE_ADMIN_TOKEN", "op-token")
	t.Setenv("GATE_BLACKLIST_CODES", " BLOCK1, ,BLOCK2 ")
	t.Setenv("GATE_SIMULATED_LATENCY", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("GATE_TRUSTED_PROXIES", "10.1.0.0/16, 192.0.2.10")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "op-token", cfg.AdminToken)
	assert.Equal(t, []string{"BLOCK1", "BLOCK2"}, cfg.Gate.BlacklistCodes)
	assert.Equal(t, 250*time.Millisecond, cfg.Gate.SimulatedLatency)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"10.1.0.0/16", "192.0.2.10"}, cfg.Gate.TrustedProxies)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
}

func TestFromEnv_ProdHasNoDefaultAdminToken(t *testing.T) {
	t.Setenv("GATE_ENV", "prod")
	t.Setenv("GATE_ADMIN_TOKEN", "")

	cfg := FromEnv()
	assert.Empty(t, cfg.AdminToken)
	assert.EqualError(t, cfg.Validate(), "GATE_ADMIN_TOKEN is required when GATE_ENV=prod")
}

func TestServer_Validate(t *testing.T) {
	t.Run("dev default token passes", func(t *testing.T) {
		t.Setenv("GATE_ENV", "")
		t.Setenv("GATE_ADMIN_TOKEN", "")
		assert.NoError(t, FromEnv().Validate())
	})

	t.Run("empty token outside prod", func(t *testing.T) {
		assert.EqualError(t, Server{Environment: EnvDev}.Validate(), "GATE_ADMIN_TOKEN is required")
	})

	t.Run("prod with token passes", func(t *testing.T) {
		assert.NoError(t, Server{Environment: EnvProd, AdminToken: "op"}.Validate())
	})
}

func TestFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("GATE_SIMULATED_LATENCY", "soon")
	t.Setenv("GATE_AUDIT_BUFFER_SIZE", "-3")
	t.Setenv("GATE_AUDIT_FLUSH_INTERVAL", "fast")
	t.Setenv("REDIS_POOL_SIZE", "many")

	cfg := FromEnv()

	assert.Zero(t, cfg.Gate.SimulatedLatency)
	assert.Equal(t, 1024, cfg.Audit.BufferSize)
	assert.Equal(t, time.Second, cfg.Audit.FlushInterval)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}
