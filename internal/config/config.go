package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the whole application configuration.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	GoEnv string `envconfig:"GO_ENV" default:"dev"`

	DBDriver         string        `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL      string        `envconfig:"DATABASE_URL"`
	PostgresHost     string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int           `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string        `envconfig:"POSTGRES_USER"`
	PostgresPassword string        `envconfig:"POSTGRES_PASSWORD"`
	PostgresDB       string        `envconfig:"POSTGRES_DB"`
	PostgresSSLMode  string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	SQLitePath       string        `envconfig:"SQLITE_PATH" default:"franchise.db"`
	MaxOpenConns     int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns     int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime  time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	StatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"5s"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	LowStockThreshold  int64  `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	LogFormat          string `envconfig:"LOG_FORMAT" default:"text"`

	AutoCancelEnabled bool `envconfig:"AUTO_CANCEL_ENABLED" default:"true"`
	AutoCancelHour    int  `envconfig:"AUTO_CANCEL_HOUR" default:"1"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			if c.PostgresUser == "" {
				return fmt.Errorf("POSTGRES_USER is required")
			}
			if c.PostgresDB == "" {
				return fmt.Errorf("POSTGRES_DB is required")
			}
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0")
	}
	if c.AutoCancelHour < 0 || c.AutoCancelHour > 23 {
		return fmt.Errorf("AUTO_CANCEL_HOUR must be between 0 and 23")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value postgres DSN.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}
