package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pkgstrings "estategate/pkg/platform/strings"
)

// Environments recognised by GATE_ENV.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

const devAdminToken = "dev-admin-token-change-me"

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	AdminToken  string

	Gate      GateConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Audit     AuditConfig
	Telemetry TelemetryConfig
}

// GateConfig holds the gate service knobs.
type GateConfig struct {
	BlacklistCodes   []string
	DefaultLocation  string
	SimulatedLatency time.Duration
	// VerifyRateLimit caps verification attempts per client IP in
	// VerifyRateWindow.
	VerifyRateLimit  int
	VerifyRateWindow time.Duration
	// TrustedProxies lists CIDRs or addresses whose X-Forwarded-For is
	// honoured when resolving the client IP. Empty means RemoteAddr only.
	TrustedProxies []string
}

// RedisConfig configures the optional Redis blacklist backend.
// An empty URL means the in-process blacklist is used.
type RedisConfig struct {
	URL          string
	Key          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit export. No brokers means audit
// events stay in the in-process store.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	ClientID   string
}

// Enabled reports whether any seed broker was configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// AuditConfig sizes the audit export buffer and worker.
type AuditConfig struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// TelemetryConfig configures OTLP trace export.
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
}

// IsProd reports whether the server runs with production defaults.
func (s Server) IsProd() bool {
	return s.Environment == EnvProd
}

// Validate reports settings the server cannot start without.
func (s Server) Validate() error {
	if s.AdminToken == "" {
		if s.IsProd() {
			return errors.New("GATE_ADMIN_TOKEN is required when GATE_ENV=prod")
		}
		return errors.New("GATE_ADMIN_TOKEN is required")
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it. Malformed numbers and durations fall
// back to their defaults.
func FromEnv() Server {
	_ = godotenv.Load()

	env := strings.ToLower(readString("GATE_ENV", EnvDev))
	if env != EnvProd {
		env = EnvDev
	}

	adminToken := os.Getenv("GATE_ADMIN_TOKEN")
	if adminToken == "" && env == EnvDev {
		// Use a default for development - should be overridden in production
		adminToken = devAdminToken
	}

	return Server{
		Addr:        readString("GATE_HTTP_ADDR", ":8080"),
		Environment: env,
		LogLevel:    readString("LOG_LEVEL", "info"),
		AdminToken:  adminToken,
		Gate: GateConfig{
			BlacklistCodes:   readList("GATE_BLACKLIST_CODES", []string{"BLOCK123"}),
			DefaultLocation:  readString("GATE_DEFAULT_LOCATION", "Main Gate"),
			SimulatedLatency: readDuration("GATE_SIMULATED_LATENCY", 0),
			VerifyRateLimit:  readInt("GATE_VERIFY_RATE_LIMIT", 30),
			VerifyRateWindow: readDuration("GATE_VERIFY_RATE_WINDOW", time.Minute),
			TrustedProxies:   readList("GATE_TRUSTED_PROXIES", nil),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			Key:          readString("REDIS_BLACKLIST_KEY", "gate:blacklist"),
			PoolSize:     readInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: readInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  readDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  readDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: readDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    readList("KAFKA_BROKERS", nil),
			AuditTopic: readString("KAFKA_AUDIT_TOPIC", "estategate.audit"),
			ClientID:   readString("KAFKA_CLIENT_ID", "estategate"),
		},
		Audit: AuditConfig{
			BufferSize:    readInt("GATE_AUDIT_BUFFER_SIZE", 1024),
			BatchSize:     readInt("GATE_AUDIT_BATCH_SIZE", 100),
			FlushInterval: readDuration("GATE_AUDIT_FLUSH_INTERVAL", time.Second),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  readString("OTEL_SERVICE_NAME", "estategate"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPInsecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
		},
	}
}

func readString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

// readList reads a comma separated value. An unset, empty or all-blank
// variable yields fallback.
func readList(key string, fallback []string) []string {
	if out := pkgstrings.SplitList(os.Getenv(key), ","); out != nil {
		return out
	}
	return fallback
}
