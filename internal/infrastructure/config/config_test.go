package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the tests touch; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WMS_APP_NAME", "WMS_APP_ENV", "WMS_APP_PORT",
		"WMS_DATABASE_DRIVER", "WMS_DATABASE_HOST", "WMS_DATABASE_PORT", "WMS_DATABASE_USER",
		"WMS_DATABASE_PASSWORD", "WMS_DATABASE_DBNAME", "WMS_DATABASE_SSLMODE",
		"WMS_DATABASE_MAX_OPEN_CONNS", "WMS_DATABASE_MAX_IDLE_CONNS",
		"WMS_CACHE_STATISTICS_TTL", "WMS_SCHEDULER_STOCK_ALERT_CRON",
		"WMS_TELEMETRY_SAMPLING_RATIO", "WMS_TELEMETRY_DB_LOG_FULL_SQL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stockroom", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "stockroom", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 5*time.Minute, cfg.Cache.StatisticsTTL)
		assert.Equal(t, "*/15 * * * *", cfg.Scheduler.StockAlertCron)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)
	})

	t.Run("loads values from environment variables with WMS prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_APP_NAME", "test-app")
		t.Setenv("WMS_APP_ENV", "testing")
		t.Setenv("WMS_APP_PORT", "9000")
		t.Setenv("WMS_DATABASE_HOST", "testdb.local")
		t.Setenv("WMS_DATABASE_PORT", "5433")
		t.Setenv("WMS_DATABASE_USER", "testuser")
		t.Setenv("WMS_DATABASE_PASSWORD", "testpass")
		t.Setenv("WMS_DATABASE_DBNAME", "testdb")
		t.Setenv("WMS_DATABASE_SSLMODE", "require")
		t.Setenv("WMS_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("WMS_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("WMS_CACHE_STATISTICS_TTL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 30*time.Second, cfg.Cache.StatisticsTTL)
	})

	t.Run("accepts sqlite driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "stockroom.db", cfg.Database.SQLitePath)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("WMS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WMS_APP_ENV", "production")
		t.Setenv("WMS_DATABASE_PASSWORD", "secure-password")
		t.Setenv("WMS_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("WMS_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("WMS_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects sqlite in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("WMS_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite is not supported in production")
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("WMS_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
