package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Lock      LockConfig
	RateLimit RateLimitConfig
	Security  SecurityConfig
	Seed      SeedConfig
	LogLevel  string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	AppName string
	Port    string
}

// DatabaseConfig selects the gorm dialect and connection parameters.
type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	User         string
	Password     string
	Name         string
	Port         string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
}

// LockConfig selects how same-SKU stock movements are serialized.
type LockConfig struct {
	Backend      string
	RedisAddress string
	TTL          time.Duration
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type SecurityConfig struct {
	BcryptCost int
}

// SeedConfig is the administrator created on first start.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	LockLocal = "local"
	LockRedis = "redis"
)

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env is fine; configuration may come from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			AppName: getenvWithDefault("APP_NAME", "Smart Inventory v1.0"),
			Port:    getenvWithDefault("PORT", "3000"),
		},
		Database: DatabaseConfig{
			Driver:       getenvWithDefault("DB_DRIVER", DriverPostgres),
			URL:          os.Getenv("DATABASE_URL"),
			Host:         getenvWithDefault("DB_HOST", "localhost"),
			User:         os.Getenv("DB_USER"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         getenvWithDefault("DB_NAME", "smart_inventory"),
			Port:         os.Getenv("DB_PORT"),
			TimeZone:     getenvWithDefault("DB_TIMEZONE", "UTC"),
			MaxIdleConns: getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", 100),
		},
		Lock: LockConfig{
			Backend:      getenvWithDefault("LOCK_BACKEND", LockLocal),
			RedisAddress: getenvWithDefault("REDIS_ADDRESS", "localhost:6379"),
			TTL:          getenvDuration("LOCK_TTL", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:   getenvFloat("RATE_LIMIT_RPS", 20),
			Burst: getenvInt("RATE_LIMIT_BURST", 40),
		},
		Security: SecurityConfig{
			BcryptCost: getenvInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		Seed: SeedConfig{
			AdminUsername: getenvWithDefault("SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
			AdminEmail:    getenvWithDefault("SEED_ADMIN_EMAIL", "admin@example.com"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
		if c.Database.URL == "" && c.Database.User == "" {
			return errors.New("DATABASE_URL or DB_USER must be provided")
		}
	case DriverSQLite:
		if c.Database.URL == "" && c.Database.Name == "" {
			return errors.New("DATABASE_URL or DB_NAME must be provided for sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported (use %s, %s or %s)", c.Database.Driver, DriverPostgres, DriverMySQL, DriverSQLite)
	}

	if c.Database.MaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}

	switch c.Lock.Backend {
	case LockLocal:
	case LockRedis:
		if c.Lock.RedisAddress == "" {
			return errors.New("REDIS_ADDRESS must be provided when LOCK_BACKEND=redis")
		}
		if c.Lock.TTL <= 0 {
			return errors.New("LOCK_TTL must be positive")
		}
	default:
		return fmt.Errorf("LOCK_BACKEND %q is not supported (use %s or %s)", c.Lock.Backend, LockLocal, LockRedis)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// DSN renders the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case DriverSQLite:
		return d.Name
	case DriverMySQL:
		port := d.Port
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=%s",
			d.User, d.Password, d.Host, port, d.Name, d.TimeZone)
	default:
		port := d.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			d.Host, d.User, d.Password, d.Name, port, d.TimeZone)
	}
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
