package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig

	// Ingestion
	Webhook WebhookConfig
	Broker  BrokerConfig

	// Internal endpoints (audit, live feed)
	Internal InternalConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	SentryDSN    string
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type DedupeConfig struct {
	Enabled bool
	TTL     time.Duration
	Size    int
}

type WebhookConfig struct {
	RequireSignature bool
	RateLimitPerMin  int
	MaxBodyBytes     int64
	ProcessTimeout   time.Duration
	FinalizeTimeout  time.Duration
	SweepInterval    time.Duration
	SweepOlderThan   time.Duration
	Dedupe           DedupeConfig
}

type BrokerConfig struct {
	URL        string
	Stream     string
	PoolSize   int
	MaxRetries int
}

type InternalConfig struct {
	Key string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Load loads configuration using Viper.
// .env files in ./config are applied to the process environment first, then
// config.yaml is searched in ./config, ., /etc/app/. Environment variables win
// over the file, with "." replaced by "_" (WEBHOOK_REQUIRE_SIGNATURE, ...).
func Load() (*Config, error) {
	loadEnvFiles("config/.env", "config/.env.local")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.SentryDSN = viper.GetString("logger.sentry_dsn")

	// Database
	cfg.Database.Driver = viper.GetString("database.driver")
	cfg.Database.DSN = viper.GetString("database.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	cfg.Database.MaxOpenConns = viper.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = viper.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = viper.GetDuration("database.conn_max_lifetime")
	cfg.Database.AutoMigrate = viper.GetBool("database.auto_migrate")

	// Webhooks
	cfg.Webhook.RequireSignature = viper.GetBool("webhook.require_signature")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")
	cfg.Webhook.ProcessTimeout = viper.GetDuration("webhook.process_timeout")
	cfg.Webhook.FinalizeTimeout = viper.GetDuration("webhook.finalize_timeout")
	cfg.Webhook.SweepInterval = viper.GetDuration("webhook.sweep_interval")
	cfg.Webhook.SweepOlderThan = viper.GetDuration("webhook.sweep_older_than")
	cfg.Webhook.Dedupe.Enabled = viper.GetBool("webhook.dedupe.enabled")
	cfg.Webhook.Dedupe.TTL = viper.GetDuration("webhook.dedupe.ttl")
	cfg.Webhook.Dedupe.Size = viper.GetInt("webhook.dedupe.size")

	// Broker
	cfg.Broker.URL = viper.GetString("broker.url")
	if natsURL := viper.GetString("nats_url"); natsURL != "" {
		cfg.Broker.URL = natsURL
	}
	cfg.Broker.Stream = viper.GetString("broker.stream")
	cfg.Broker.PoolSize = viper.GetInt("broker.pool_size")
	cfg.Broker.MaxRetries = viper.GetInt("broker.max_retries")

	cfg.Internal.Key = viper.GetString("internal.key")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("database.driver", DriverPostgres)
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "30m")
	viper.SetDefault("database.auto_migrate", false)

	viper.SetDefault("webhook.require_signature", false)
	viper.SetDefault("webhook.rate_limit_per_min", 120)
	viper.SetDefault("webhook.max_body_bytes", 5<<20)
	viper.SetDefault("webhook.process_timeout", "15s")
	viper.SetDefault("webhook.finalize_timeout", "5s")
	viper.SetDefault("webhook.sweep_interval", "0s")
	viper.SetDefault("webhook.sweep_older_than", "15m")
	viper.SetDefault("webhook.dedupe.enabled", false)
	viper.SetDefault("webhook.dedupe.ttl", "10m")
	viper.SetDefault("webhook.dedupe.size", 10000)

	viper.SetDefault("broker.stream", "DEVTEL")
	viper.SetDefault("broker.pool_size", 4)
	viper.SetDefault("broker.max_retries", 3)
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Webhook.MaxBodyBytes <= 0 {
		return fmt.Errorf("webhook.max_body_bytes must be positive")
	}
	if cfg.Webhook.ProcessTimeout <= 0 || cfg.Webhook.FinalizeTimeout <= 0 {
		return fmt.Errorf("webhook.process_timeout and webhook.finalize_timeout must be positive")
	}
	if cfg.Webhook.Dedupe.Enabled && cfg.Webhook.Dedupe.Size <= 0 {
		return fmt.Errorf("webhook.dedupe.size must be positive when dedupe is enabled")
	}
	return nil
}

// loadEnvFiles applies .env files in order; later files override earlier ones.
// Missing files are skipped.
func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Overload(p); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", p, err)
		}
	}
}
