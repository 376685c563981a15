package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "bloodhound/pkg/platform/strings"
)

// SnapshotCacheTTL enforces retention for enrichment snapshots pulled from
// external registries. Registry data is volatile; stale snapshots must not
// outlive this window.
var SnapshotCacheTTL = 5 * time.Minute

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	Registries RegistryConfig
	Redis      RedisConfig
	Postgres   PostgresConfig
	Kafka      KafkaConfig
}

// RegistryConfig holds per-connector endpoints and timeouts. MockMode swaps
// every connector for its deterministic mock implementation.
type RegistryConfig struct {
	MockMode bool

	GSTNBaseURL  string
	MCABaseURL   string
	IBBIBaseURL  string
	UdyamBaseURL string

	GSTNTimeout  time.Duration
	MCATimeout   time.Duration
	IBBITimeout  time.Duration
	UdyamTimeout time.Duration
}

// RedisConfig holds the snapshot cache connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the vendor/audit store connection settings.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig holds the audit event publisher settings. Empty brokers disable
// Kafka publishing entirely.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BLOODHOUND_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Registries: RegistryConfig{
			MockMode:     os.Getenv("REGISTRY_MOCK_MODE") != "false",
			GSTNBaseURL:  envOr("GSTN_BASE_URL", "https://api.gstn.in"),
			MCABaseURL:   envOr("MCA_BASE_URL", "https://mca.gov.in/api/v1"),
			IBBIBaseURL:  envOr("IBBI_BASE_URL", "https://ibbi.gov.in/api"),
			UdyamBaseURL: envOr("UDYAM_BASE_URL", "https://udyamregistration.gov.in/api"),
			GSTNTimeout:  envDuration("GSTN_TIMEOUT", 5*time.Second),
			MCATimeout:   envDuration("MCA_TIMEOUT", 5*time.Second),
			IBBITimeout:  envDuration("IBBI_TIMEOUT", 5*time.Second),
			UdyamTimeout: envDuration("UDYAM_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "bloodhound.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitNonEmpty(raw string) []string {
	if raw == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(raw, ","))
}
