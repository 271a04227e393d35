package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string
	LogLevel          string
	LogFormat         string
	EnrichConcurrency int
	ShutdownTimeout   time.Duration

	Database     DatabaseConfig
	Vehicle      VehicleConfig
	FeatureFlags FeatureFlagsConfig
	Redis        RedisConfig
}

// DatabaseConfig configures the policy database. An empty URL selects the
// seeded in-memory stores.
type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// VehicleConfig configures the outbound vehicle information service.
type VehicleConfig struct {
	BaseURL  string
	Path     string
	Username string
	Password string
	Timeout  time.Duration
	// RatePerSecond caps outbound calls; zero disables the limiter.
	RatePerSecond float64
}

// FeatureFlagsConfig selects where feature flags are read from.
type FeatureFlagsConfig struct {
	Source string
	File   string
}

// RedisConfig configures the optional redis connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	FlagSourceStatic = "static"
	FlagSourceFile   = "file"
	FlagSourceRedis  = "redis"
)

// Load reads an optional .env file and builds the configuration from the environment.
func Load(envFiles ...string) (Server, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(envFiles...)
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var errs []error
	cfg := Server{
		Addr:              getenv("INSURANCE_ADDR", ":8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "json"),
		EnrichConcurrency: intEnv("ENRICH_CONCURRENCY", 4, &errs),
		ShutdownTimeout:   durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Driver:          getenv("DATABASE_DRIVER", "postgres"),
			MaxOpenConns:    intEnv("DB_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    intEnv("DB_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
		},
		Vehicle: VehicleConfig{
			BaseURL:       getenv("VEHICLE_SERVICE_URL", "http://localhost:8081"),
			Path:          getenv("VEHICLE_SERVICE_PATH", "/api/v1/vehicles/"),
			Username:      os.Getenv("VEHICLE_SERVICE_USERNAME"),
			Password:      os.Getenv("VEHICLE_SERVICE_PASSWORD"),
			Timeout:       durationEnv("VEHICLE_SERVICE_TIMEOUT", 5*time.Second, &errs),
			RatePerSecond: floatEnv("VEHICLE_SERVICE_RPS", 0, &errs),
		},
		FeatureFlags: FeatureFlagsConfig{
			Source: getenv("FEATURE_FLAGS_SOURCE", FlagSourceStatic),
			File:   getenv("FEATURE_FLAGS_FILE", "flags/flags-local.json"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
		},
	}
	if len(errs) > 0 {
		return Server{}, errs[0]
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or pgx, got %q", c.Database.Driver)
	}
	switch c.FeatureFlags.Source {
	case FlagSourceStatic, FlagSourceFile:
	case FlagSourceRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("FEATURE_FLAGS_SOURCE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown FEATURE_FLAGS_SOURCE %q", c.FeatureFlags.Source)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be at least 1")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("parse %s: %w", key, err))
		return def
	}
	return n
}

func floatEnv(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("parse %s: %w", key, err))
		return def
	}
	return f
}

func durationEnv(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("parse %s: %w", key, err))
		return def
	}
	return d
}
