package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Generation provider
	OpenAIAPIKey           string
	OpenAIBaseURL          string
	OpenAIModel            string
	OpenAIAssistantID      string
	OpenAINamedAssistantID string
	GenerationPollInterval time.Duration
	GenerationTimeout      time.Duration

	LogLevel string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// A missing .env file is fine; real deployments use secrets.
		_ = godotenv.Load()
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load() (*Config, error) {
	cfg := &Config{
		ServerPort:             lookup("SERVER_PORT", "server_port", "8080"),
		ServerHost:             lookup("SERVER_HOST", "server_host", "0.0.0.0"),
		CORSOrigins:            splitList(lookup("CORS_ORIGINS", "", "http://localhost:5173")),
		DBDriver:               lookup("DB_DRIVER", "", DriverPostgres),
		DBHost:                 lookup("DB_HOST", "db_host", "localhost"),
		DBPort:                 lookup("DB_PORT", "db_port", "5432"),
		DBUser:                 lookup("DB_USER", "db_user", ""),
		DBPassword:             lookup("DB_PASSWORD", "db_password", ""),
		DBName:                 lookup("DB_NAME", "db_name", "pantrychef"),
		DBSSLMode:              lookup("DB_SSL_MODE", "db_ssl_mode", "disable"),
		SQLitePath:             lookup("SQLITE_PATH", "", "pantrychef.db"),
		RedisHost:              lookup("REDIS_HOST", "redis_host", ""),
		RedisPort:              lookup("REDIS_PORT", "redis_port", "6379"),
		RedisPassword:          lookup("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:               lookup("REDIS_URL", "redis_url", ""),
		JWTSecret:              lookup("JWT_SECRET", "jwt_secret", ""),
		OpenAIAPIKey:           lookup("OPENAI_API_KEY", "openai_api_key", ""),
		OpenAIBaseURL:          lookup("OPENAI_BASE_URL", "", "https://api.openai.com/v1"),
		OpenAIModel:            lookup("OPENAI_MODEL", "", "gpt-4o-mini"),
		OpenAIAssistantID:      lookup("OPENAI_ASST_KEY", "openai_asst_key", ""),
		OpenAINamedAssistantID: lookup("OPENAI_GEN_ASST_KEY", "openai_gen_asst_key", ""),
		LogLevel:               lookup("LOG_LEVEL", "", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(lookup("REDIS_DB", "", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(lookup("JWT_TTL", "", "24h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.GenerationPollInterval, err = time.ParseDuration(lookup("GENERATION_POLL_INTERVAL", "", "1s")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_POLL_INTERVAL: %w", err)
	}
	if cfg.GenerationTimeout, err = time.ParseDuration(lookup("GENERATION_TIMEOUT", "", "2m")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// PostgresDSN returns the key/value connection string used by the gorm postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// PostgresURL returns the connection URL used by the migration tool
func (c *Config) PostgresURL() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup resolves a value from the environment first, then from a Docker secret
func lookup(envVar, secret, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
		return value
	}
	if secret != "" {
		if value := readSecret(secret); value != "" {
			return value
		}
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
