package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "bima/pkg/platform/strings"
)

// QuoteValidityWindow is how long a pending quote is advertised as valid on
// the dashboard. Expiry is display-only; stale quotes are never purged.
var QuoteValidityWindow = 14 * 24 * time.Hour

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// AgentPassword is the shared password for the seeded demo agent
	// accounts. Real deployments would replace seeding with a directory.
	AgentPassword string

	// StrictActivation makes re-activating an already-active quote an error
	// instead of an idempotent no-op.
	StrictActivation bool

	// USDToKES is the fixed exchange rate applied to travel premiums, which
	// are rated in USD but collected in KES.
	USDToKES float64

	Redis    RedisConfig
	Postgres PostgresConfig
	Payment  PaymentConfig
	Kafka    KafkaConfig
}

// RedisConfig holds connection settings for the Redis-backed blob store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds connection settings for the Postgres-backed blob store.
type PostgresConfig struct {
	URL string
}

// PaymentConfig tunes the simulated payment provider.
type PaymentConfig struct {
	// Delay stands in for the round trip to the mobile-money gateway.
	Delay time.Duration
}

// KafkaConfig enables the optional audit event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BIMA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	kesRate := 130.0
	if v := os.Getenv("USD_TO_KES_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			kesRate = parsed
		}
	}

	paymentDelay := 3 * time.Second
	if v := os.Getenv("PAYMENT_SIM_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			paymentDelay = parsed
		}
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(v, ","))
	}
	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "bima.quote-events"
	}

	agentPassword := os.Getenv("BIMA_AGENT_PASSWORD")
	if agentPassword == "" {
		agentPassword = "bima-demo"
	}

	return Server{
		Addr:             addr,
		JWTSigningKey:    jwtSigningKey,
		AgentPassword:    agentPassword,
		StrictActivation: os.Getenv("STRICT_ACTIVATION") == "true",
		USDToKES:         kesRate,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{URL: os.Getenv("POSTGRES_URL")},
		Payment:  PaymentConfig{Delay: paymentDelay},
		Kafka:    KafkaConfig{Brokers: brokers, Topic: topic},
	}
}
