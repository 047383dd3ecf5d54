package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	AnthropicAPIKey string
	AnthropicModel  string
	AnthropicURL    string

	RedisURL          string
	SessionTTLMinutes int

	// StrictValidation makes the executor reject commands with missing
	// required fields before executing them. Off by default: the main
	// path historically executed commands without this check.
	StrictValidation bool

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	ReminderEnabled bool
	ReminderCron    string
	ReminderDays    int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBConn:   getEnv("DB_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=financial_hub sslmode=disable"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		AnthropicURL:    getEnv("ANTHROPIC_URL", "https://api.anthropic.com"),

		RedisURL:          getEnv("REDIS_URL", ""),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),

		StrictValidation: getEnvBool("STRICT_VALIDATION", false),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@financial-hub.local"),

		ReminderEnabled: getEnvBool("REMINDER_ENABLED", false),
		ReminderCron:    getEnv("REMINDER_CRON", "0 8 * * *"),
		ReminderDays:    getEnvInt("REMINDER_DAYS", 3),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
