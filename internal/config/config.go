package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	GinMode   string
	Addr      string
	TZ        string
	LogLevel  string
	LogFormat string

	DBDriver      string
	DBPath        string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBSSLMode     string
	DBMaxAttempts int
	DBRetryDelay  time.Duration
}

// Load reads the configuration from the environment. In debug mode a dotenv
// file (ENV_FILE, default .env) is loaded first; a missing file is not an error.
func Load() *Config {
	if getenv("GIN_MODE", "debug") == "debug" {
		envPath := getenv("ENV_FILE", ".env")
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("loaded env file", "path", envPath)
		}
	}

	cfg := &Config{
		GinMode:   getenv("GIN_MODE", "debug"),
		Addr:      getenv("APP_ADDR", ":8080"),
		TZ:        getenv("TZ", "UTC"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),

		DBDriver:      getenv("DB_DRIVER", DriverSQLite),
		DBPath:        getenv("DB_PATH", "library.db"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPass:        getenv("DB_PASS", ""),
		DBName:        getenv("DB_NAME", "library"),
		DBSSLMode:     os.Getenv("DB_SSLMODE"),
		DBMaxAttempts: getenvInt("DB_MAX_ATTEMPTS", 10),
		DBRetryDelay:  getenvDuration("DB_RETRY_DELAY", 2*time.Second),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// SQLiteDSN always enables foreign keys so RESTRICT references hold.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.DBPath + "?_foreign_keys=on"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
