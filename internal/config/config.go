package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Migration MigrationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Name               string
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// StorageConfig holds the file storage used for archived exports
type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// RateLimitConfig uses the limiter formatted rate, e.g. "100-M". Empty disables it.
type RateLimitConfig struct {
	Rate string
}

type MigrationConfig struct {
	Path        string
	AutoMigrate bool
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
	maxConns, err := getEnvInt32("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt32("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:               getEnv("APP_NAME", "payroll-backend"),
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/files", appPort)),
	}

	config.RateLimit = RateLimitConfig{
		Rate: getEnv("RATE_LIMIT", "100-M"),
	}

	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}
	config.Migration = MigrationConfig{
		Path:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		AutoMigrate: autoMigrate,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("DB_PORT must be positive")
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("APP_PORT must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if _, ok := logLevels[c.App.LogLevel]; !ok {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured log level, info when unknown
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[c.App.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return int32(n), nil
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
