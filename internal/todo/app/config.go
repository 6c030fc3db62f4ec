package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DevJWTSecret is the HS256 secret used when TODO_JWT_SECRET is unset. It is
// refused in prod.
const DevJWTSecret = "abc123"

// Store drivers selectable with TODO_STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Issuer string // Optional: issuer claim for tokens (default: todo)

	StoreDriver   string // Optional: sqlite, postgres or mongo (default: sqlite)
	DatabaseURL   string // Required for postgres and mongo: DSN or mongodb:// URI
	DatabaseFile  string // Optional: path to SQLite database file (default: ./todo.db)
	MongoDatabase string // Optional: mongo database name (default: todo)

	JWTAlgorithm string        // Optional: HS256 or EdDSA (default: HS256)
	JWTSecret    string        // HS256 shared secret (default: DevJWTSecret outside prod)
	JWTKeyFile   string        // Optional: PKCS8 Ed25519 PEM for EdDSA, ephemeral key when empty
	TokenTTL     time.Duration // Optional: session token lifetime, 0 means until logout (default: 0)

	PepperFile string // Optional: path to pepper file (default: ./pepper)
	Pepper     string // Optional: pepper value, takes precedence over PepperFile

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("TODO_ISSUER", "todo"),
		StoreDriver:   getEnvOrDefault("TODO_STORE_DRIVER", DriverSQLite),
		DatabaseURL:   getEnvOrDefault("TODO_DATABASE_URL", os.Getenv("MONGODB_URI")),
		DatabaseFile:  getEnvOrDefault("TODO_DATABASE_FILE", "todo.db"),
		MongoDatabase: getEnvOrDefault("TODO_MONGO_DATABASE", "todo"),

		JWTAlgorithm: getEnvOrDefault("TODO_JWT_ALGORITHM", "HS256"),
		JWTSecret:    os.Getenv("TODO_JWT_SECRET"),
		JWTKeyFile:   os.Getenv("TODO_JWT_KEY_FILE"),
		TokenTTL:     getEnvDurationOrDefault("TODO_TOKEN_TTL", 0),

		PepperFile: getEnvOrDefault("TODO_PEPPER_FILE", "pepper"),
		Pepper:     os.Getenv("TODO_PEPPER"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations the service cannot start with. It fills in
// the development JWT secret outside prod.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
	case DriverPostgres, DriverMongo:
		if c.DatabaseURL == "" {
			return fmt.Errorf("TODO_DATABASE_URL is required for the %s driver", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown TODO_STORE_DRIVER %q (supported: sqlite, postgres, mongo)", c.StoreDriver)
	}

	if c.JWTAlgorithm == "HS256" {
		if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
			return errors.New("TODO_JWT_SECRET must be set to a non-default value in prod")
		}
		if c.JWTSecret == "" {
			c.JWTSecret = DevJWTSecret
		}
	}

	if c.TokenTTL < 0 {
		return errors.New("TODO_TOKEN_TTL must not be negative")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
