package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	URL         string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// AdminConfig describes the bootstrap administrator created on first start.
type AdminConfig struct {
	Seed         bool
	Email        string
	Password     string
	FirstName    string
	LastName     string
	EmployeeCode string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type CronConfig struct {
	Enabled         bool
	PayrollSchedule string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	autoMigrate, err := getEnvBool("DB_AUTO_MIGRATE", true)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		URL:         getEnv("DATABASE_URL", ""),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "ems"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: autoMigrate,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", getEnv("PORT", "3000")))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	corsOrigins := getEnvSlice("CORS_ORIGINS")
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:5173"}
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: corsOrigins,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "168h"),
	}

	// Admin bootstrap
	seedAdmin, err := getEnvBool("ADMIN_SEED", true)
	if err != nil {
		return nil, err
	}
	config.Admin = AdminConfig{
		Seed:         seedAdmin,
		Email:        getEnv("ADMIN_EMAIL", "admin@example.com"),
		Password:     getEnv("ADMIN_PASSWORD", "Admin@12345"),
		FirstName:    getEnv("ADMIN_FIRST_NAME", "System"),
		LastName:     getEnv("ADMIN_LAST_NAME", "Admin"),
		EmployeeCode: getEnv("ADMIN_EMPLOYEE_CODE", "EMP-ADMIN-0001"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("DASHBOARD_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_CACHE_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		CacheTTL: cacheTTL,
	}

	// Cron configuration
	cronEnabled, err := getEnvBool("CRON_ENABLED", false)
	if err != nil {
		return nil, err
	}
	config.Cron = CronConfig{
		Enabled:         cronEnabled,
		PayrollSchedule: getEnv("PAYROLL_CRON_SPEC", "0 2 1 * *"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when DATABASE_URL is not set")
	}
	if c.Cron.Enabled {
		if _, err := cron.ParseStandard(c.Cron.PayrollSchedule); err != nil {
			return fmt.Errorf("invalid PAYROLL_CRON_SPEC: %w", err)
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
