package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GIN_MODE", "APP_ADDR", "TZ", "LOG_LEVEL", "LOG_FORMAT", "ENV_FILE",
	"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME", "DB_SSLMODE",
	"DB_MAX_ATTEMPTS", "DB_RETRY_DELAY",
}

// clearEnv blanks every key Load reads and points ENV_FILE at nothing.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "UTC", cfg.TZ)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "library.db", cfg.DBPath)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 10, cfg.DBMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.DBRetryDelay)
}

func TestLoad_ReleaseRequiresSSL(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "release")

	assert.Equal(t, "require", Load().DBSSLMode)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_SSLMODE", "verify-full")
	t.Setenv("DB_MAX_ATTEMPTS", "3")
	t.Setenv("DB_RETRY_DELAY", "500ms")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "verify-full", cfg.DBSSLMode)
	assert.Equal(t, 3, cfg.DBMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.DBRetryDelay)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_ATTEMPTS", "-2")
	t.Setenv("DB_RETRY_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.DBMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.DBRetryDelay)
}

func TestLoad_ReadsEnvFileInDebug(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PATH=from-file.db\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv never overrides a variable that is set, even to "".
	require.NoError(t, os.Unsetenv("DB_PATH"))

	assert.Equal(t, "from-file.db", Load().DBPath)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:    "localhost",
		DBUser:    "postgres",
		DBPass:    "secret",
		DBName:    "library",
		DBPort:    "5432",
		DBSSLMode: "disable",
		TZ:        "UTC",
		DBPath:    "/tmp/library.db",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=library port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
	assert.Equal(t, "file:/tmp/library.db?_foreign_keys=on", cfg.SQLiteDSN())
}
