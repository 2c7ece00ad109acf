package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port     string
	Provider string

	StoreDriver     string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	Postgres        PostgresConfig
	SQLitePath      string

	RedisAddr      string
	JWTSecret      string
	AllowedOrigins []string

	ExportEnabled  bool
	ExportSchedule string
	ExportDir      string
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DB       string
	Port     string
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DB, p.Port, p.SSLMode)
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		Provider: getEnvOrDefault("AI_PROVIDER", "gemini"),

		StoreDriver:     strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreSQLite)),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnvOrDefault("MONGO_DB", "mockly"),
		MongoCollection: getEnvOrDefault("MONGO_COLLECTION", "interviews"),
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			DB:       getEnvOrDefault("POSTGRES_DB", "mockly"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "mockly.db"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		ExportEnabled:  getEnvBool("EXPORT_ENABLED", false),
		ExportSchedule: getEnvOrDefault("EXPORT_SCHEDULE", "0 3 * * *"),
		ExportDir:      getEnvOrDefault("EXPORT_DIR", "./exports"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()

	switch config.StoreDriver {
	case StoreMongo:
		if config.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case StorePostgres, StoreSQLite:
	default:
		return errors.New("unsupported STORE_DRIVER: " + config.StoreDriver + ". Supported: mongo, postgres, sqlite")
	}

	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	if config.ExportEnabled {
		if _, err := cron.ParseStandard(config.ExportSchedule); err != nil {
			return fmt.Errorf("invalid EXPORT_SCHEDULE %q: %w", config.ExportSchedule, err)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
