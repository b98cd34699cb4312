// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN used by the pool, the migrate command and the seed command.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DBMaxConns caps the pgx pool size.
	DBMaxConns int32 `mapstructure:"DB_MAX_CONNS"`
	// KratosPublicURL is the base URL of the identity provider public API (whoami, logout).
	KratosPublicURL string `mapstructure:"KRATOS_PUBLIC_URL"`
	// KratosTimeout bounds every identity provider call (e.g. "5s").
	KratosTimeout string `mapstructure:"KRATOS_TIMEOUT"`
	// LoginURL is where unauthenticated browser requests are redirected.
	LoginURL string `mapstructure:"LOGIN_URL"`
	// TemplatesDir optionally overrides the embedded HTML templates with files on disk.
	TemplatesDir string `mapstructure:"TEMPLATES_DIR"`
	// Env is the application environment (e.g. "development", "production"). Selects the logger flavour.
	Env string `mapstructure:"APP_ENV"`
	// ServiceName is reported to OpenTelemetry and used as the otelgin server name.
	ServiceName string `mapstructure:"SERVICE_NAME"`

	// Telemetry (optional). Empty endpoint means no-op providers.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// Audit (optional). When Kafka brokers are set, admin mutations are published to AuditKafkaTopic.
	// AuditKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	AuditKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	AuditKafkaTopic   string `mapstructure:"AUDIT_KAFKA_TOPIC"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("KRATOS_PUBLIC_URL", "http://pirate-kratos:4433")
	v.SetDefault("KRATOS_TIMEOUT", "5s")
	v.SetDefault("LOGIN_URL", "/auth/login")
	v.SetDefault("TEMPLATES_DIR", "")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("SERVICE_NAME", "pirate-admin")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("AUDIT_KAFKA_TOPIC", "pirate-audit")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.KratosPublicURL == "" {
		return nil, errors.New("config: KRATOS_PUBLIC_URL must be set")
	}
	if !strings.HasPrefix(cfg.KratosPublicURL, "http://") && !strings.HasPrefix(cfg.KratosPublicURL, "https://") {
		return nil, errors.New("config: KRATOS_PUBLIC_URL must be an http(s) URL")
	}
	if cfg.DBMaxConns < 0 {
		return nil, errors.New("config: DB_MAX_CONNS must not be negative")
	}
	if cfg.DBMaxConns == 0 {
		cfg.DBMaxConns = 10
	}

	return &cfg, nil
}

// IdentityTimeout parses KratosTimeout as a time.Duration. Returns 5s if unset or invalid.
func (c *Config) IdentityTimeout() time.Duration {
	d, err := time.ParseDuration(c.KratosTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// AuditKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if audit publishing is enabled (non-empty list) and to create the producer.
func (c *Config) AuditKafkaBrokersList() []string {
	if c == nil || c.AuditKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.AuditKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsDevelopment reports whether the development logger and gin debug mode should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}
