package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/census-agent/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND
const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMongo    = "mongo"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Census record store
	StoreBackend string               `env:"STORE_BACKEND" envDefault:"memory"`
	StoreRetry   pkgRetry.RetryConfig `envPrefix:"STORE_RETRY_"`

	// Database configuration, required for the postgres backend
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	RedisCfg RedisConfig `envPrefix:"REDIS_"`
	MongoCfg MongoConfig `envPrefix:"MONGO_"`

	// Dialog behaviour
	DialogCfg DialogConfig `envPrefix:"DIALOG_"`

	// Address lookup
	AddressCfg AddressConfig `envPrefix:"ADDRESS_"`

	// Environment (set by the caller, not from env var)
	Environment string
}

// RedisConfig holds the redis store configuration
type RedisConfig struct {
	Addr      string `env:"ADDR" envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"census:"`
}

// MongoConfig holds the mongo store configuration
type MongoConfig struct {
	URI            string        `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"DATABASE" envDefault:"census"`
	Collection     string        `env:"COLLECTION" envDefault:"census_responses"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// DialogConfig tunes the interview state machine
type DialogConfig struct {
	FallbackThreshold       int  `env:"FALLBACK_THRESHOLD" envDefault:"3"`
	FallbackResetOnProgress bool `env:"FALLBACK_RESET_ON_PROGRESS" envDefault:"false"`
}

// AddressConfig holds address lookup behaviour
type AddressConfig struct {
	// DemoFallback answers unknown phone numbers with a fixed demo address
	DemoFallback bool `env:"DEMO_FALLBACK" envDefault:"true"`
}

// LoadConfig loads the env file for the environment, then parses the process
// environment into a validated Config
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = environment

	return cfg, nil
}

// Parse reads the configuration from the process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StoreBackend {
	case StoreBackendMemory, StoreBackendRedis, StoreBackendMongo:
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("STORE_BACKEND must be one of memory, postgres, redis, mongo, got %q", cfg.StoreBackend))
	}

	if cfg.StoreRetry.Attempts < 1 || cfg.StoreRetry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("STORE_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.StoreRetry.Attempts))
	}

	if cfg.DialogCfg.FallbackThreshold < 1 || cfg.DialogCfg.FallbackThreshold > 10 {
		errors = append(errors, fmt.Sprintf("DIALOG_FALLBACK_THRESHOLD must be between 1 and 10, got %d", cfg.DialogCfg.FallbackThreshold))
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development", "":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
