package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("CRON_ENABLED", "")
	t.Setenv("PAYROLL_CRON_SPEC", "")
	t.Setenv("DASHBOARD_CACHE_TTL", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.App.CORSOrigins)
	assert.Equal(t, "168h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Cron.Enabled)
	assert.Equal(t, "0 2 1 * *", cfg.Cron.PayrollSchedule)
	assert.Equal(t, "EMP-ADMIN-0001", cfg.Admin.EmployeeCode)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_PortFallsBackToPORT(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.App.Port)
}

func TestLoad_CORSOriginsTrimmed(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoad_InvalidCronSpec(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CRON_ENABLED", "true")
	t.Setenv("PAYROLL_CRON_SPEC", "every tuesday")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYROLL_CRON_SPEC")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "ems", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5432/ems?sslmode=disable", cfg.DatabaseURL())

	cfg.Database.URL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{App: AppConfig{LogLevel: in}}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
