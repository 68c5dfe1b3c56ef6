package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("JWT_SECRET", "jwt-secret")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "tebnews", cfg.DBName)
		assert.Equal(t, time.Hour, cfg.StateTTL)
		assert.Equal(t, int64(1000), cfg.StartingBalance)
		assert.Equal(t, "teb-bot", cfg.BotUsername)
		assert.Equal(t, "jwt-secret", cfg.StateSecret, "state secret falls back to the JWT secret")
		assert.True(t, cfg.AutoMigrate)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("STATE_SECRET", "state")
		t.Setenv("STATE_TTL", "30m")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("STARTING_BALANCE", "250")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("AUTO_MIGRATE", "false")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "state", cfg.StateSecret)
		assert.Equal(t, 30*time.Minute, cfg.StateTTL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "customdb", cfg.DBName)
		assert.Equal(t, int64(250), cfg.StartingBalance)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.False(t, cfg.AutoMigrate)
	})

	t.Run("fails without API key", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("JWT_SECRET", "jwt")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API_KEY")
	})

	t.Run("fails without JWT secret", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("fails on invalid port", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "key")
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("PORT", "eighty")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("rejects negative starting balance", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "key")
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("STARTING_BALANCE", "-5")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("uses defaults for invalid pool config values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "100")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("loads custom database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5433", DBName: "d"}
	assert.Equal(t, "postgres://u:p@h:5433/d?sslmode=disable", cfg.GetDBConnString())
}

func TestValidateEnv(t *testing.T) {
	t.Run("missing schema version", func(t *testing.T) {
		t.Setenv("ENV_SCHEMA_VERSION", "")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
	})

	t.Run("schema mismatch", func(t *testing.T) {
		t.Setenv("ENV_SCHEMA_VERSION", "0.9")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
	})

	t.Run("missing required", func(t *testing.T) {
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		for _, v := range RequiredEnvVars[1:] {
			t.Setenv(v, "")
		}
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("warnings for example values", func(t *testing.T) {
		for _, v := range RequiredEnvVars {
			t.Setenv(v, "value")
		}
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("DB_PASSWORD", "change_this_secure_password")
		t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("STATE_SECRET", "set")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "DB_PASSWORD")
		assert.Contains(t, warnings[1], "API_KEY")
	})
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "JWT_SECRET", "STATE_SECRET", "STATE_TTL", "TOKEN_TTL",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME", "AUTO_MIGRATE",
		"STARTING_BALANCE", "BOT_USERNAME", "TRUSTED_PROXIES", "REDIS_ADDR", "REDIS_CHANNEL",
	}

	for _, key := range envVars {
		// t.Setenv registers restoration; Unsetenv then removes it for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
