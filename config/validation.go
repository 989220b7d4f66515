package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// field pairs a config key with an accessor on Config
type field struct {
	name  string
	value func(*Config) string
}

var (
	serverFields = []field{
		{"SERVER_PORT", func(c *Config) string { return c.ServerPort }},
	}

	postgresFields = []field{
		{"DB_HOST", func(c *Config) string { return c.DBHost }},
		{"DB_PORT", func(c *Config) string { return c.DBPort }},
		{"DB_USER", func(c *Config) string { return c.DBUser }},
		{"DB_PASSWORD", func(c *Config) string { return c.DBPassword }},
		{"DB_NAME", func(c *Config) string { return c.DBName }},
	}

	sqliteFields = []field{
		{"SQLITE_PATH", func(c *Config) string { return c.SQLitePath }},
	}

	secretFields = []field{
		{"JWT_SECRET", func(c *Config) string { return c.JWTSecret }},
	}

	// Production must be able to reach the generation provider
	productionFields = []field{
		{"OPENAI_API_KEY", func(c *Config) string { return c.OpenAIAPIKey }},
		{"OPENAI_ASST_KEY", func(c *Config) string { return c.OpenAIAssistantID }},
		{"OPENAI_GEN_ASST_KEY", func(c *Config) string { return c.OpenAINamedAssistantID }},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	required := append([]field{}, serverFields...)
	required = append(required, secretFields...)

	switch cfg.DBDriver {
	case DriverPostgres:
		required = append(required, postgresFields...)
	case DriverSQLite:
		required = append(required, sqliteFields...)
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}
	}

	if env == Production {
		required = append(required, productionFields...)
	}

	var errors []string
	for _, f := range required {
		if f.value(cfg) == "" {
			errors = append(errors, ValidationError{Field: f.name, Message: "is required"}.Error())
		}
	}

	if cfg.JWTTTL <= 0 {
		errors = append(errors, ValidationError{Field: "JWT_TTL", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
