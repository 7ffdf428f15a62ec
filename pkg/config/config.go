package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Store driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Item store
	DBDriver      string `conf:"default:postgres,enum:postgres|mysql|sqlite|redis|memory,env:DB_DRIVER"`
	DBHost        string `conf:"default:localhost,env:DB_HOST"`
	DBPort        int    `conf:"default:0,env:DB_PORT"`
	DBUser        string `conf:"default:root,env:DB_USER"`
	DBPassword    string `conf:"default:rootpassword,env:DB_PASSWORD,noprint"`
	DBName        string `conf:"default:testdb,env:DB_NAME"`
	DBSSLMode     string `conf:"default:disable,env:DB_SSLMODE"`
	DBAutoMigrate bool   `conf:"default:true,env:DB_AUTO_MIGRATE"`
	SQLitePath    string `conf:"default:itemboard.db,env:SQLITE_PATH"`
	// Redis
	RedisURL string `conf:"default:redis://localhost:6379/0,env:REDIS_URL"`

	// HTTP
	Port    int    `conf:"default:3001,env:PORT"`
	WebPort int    `conf:"default:3000,env:WEB_PORT"`
	APIURL  string `conf:"default:http://localhost:3001,env:API_URL"`

	// Events: item.created outbox, only honored with the postgres driver
	EventsEnabled bool `conf:"default:false,env:EVENTS_ENABLED"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// CORS: comma-separated allowed origins, * allows all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:itemboard,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ListenAddr returns the API listen address.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// WebListenAddr returns the web client listen address.
func (c *Config) WebListenAddr() string {
	return ":" + strconv.Itoa(c.WebPort)
}

// SQLDriverName returns the database/sql driver registered for DBDriver,
// or "" when the store is not SQL-backed.
func (c *Config) SQLDriverName() string {
	switch c.DBDriver {
	case DriverPostgres:
		return "pgx"
	case DriverMySQL:
		return "mysql"
	case DriverSQLite:
		return "sqlite3"
	default:
		return ""
	}
}

// DSN builds the connection string for the configured SQL driver.
func (c *Config) DSN() (string, error) {
	switch c.DBDriver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     c.hostPort(5432),
			Path:     "/" + c.DBName,
			RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
		}
		return u.String(), nil
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPassword, c.hostPort(3306), c.DBName), nil
	case DriverSQLite:
		return "file:" + c.SQLitePath + "?_busy_timeout=5000&_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("driver %q has no SQL DSN", c.DBDriver)
	}
}

func (c *Config) hostPort(defaultPort int) string {
	port := c.DBPort
	if port == 0 {
		port = defaultPort
	}
	return c.DBHost + ":" + strconv.Itoa(port)
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.DBDriver == DriverMemory {
		errs = append(errs, "DB_DRIVER=memory loses all items on restart; use a persistent driver in production")
	}

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverMemory && cfg.DBDriver != DriverRedis && cfg.DBPassword == "rootpassword" {
		errs = append(errs, "DB_PASSWORD must not use the development default in production")
	}

	if strings.TrimSpace(cfg.CORSAllowedOrigins) == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
