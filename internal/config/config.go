package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Storage. SUPABASE_URL and SUPABASE_SERVICE_KEY select the REST API;
	// DATABASE_URL, when present, is used instead for a direct Postgres connection.
	SupabaseURL        string
	SupabaseServiceKey string
	DatabaseURL        string

	// Webhook secrets
	StripeWebhookSecret   string
	TypeformWebhookSecret string

	// Server configs
	Port               string
	Environment        string
	CorsAllowedOrigins []string

	RabbitMQURL string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

// Load reads the .env file if it exists, then the environment. Missing
// storage variables are not fatal: the server still starts and the webhook
// endpoints answer 500.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		SupabaseURL:           strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseServiceKey:    os.Getenv("SUPABASE_SERVICE_KEY"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		TypeformWebhookSecret: os.Getenv("TYPEFORM_WEBHOOK_SECRET"),
		Port:                  getEnv("PORT", "5000"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		MailHost:              os.Getenv("MAIL_HOST"),
		MailPort:              getEnvInt("MAIL_PORT", 587),
		MailUser:              os.Getenv("MAIL_USER"),
		MailPass:              os.Getenv("MAIL_PASS"),
		MailFrom:              getEnv("MAIL_FROM", "no-reply@callflex.ai"),
	}

	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins != "" {
		for _, origin := range strings.Split(corsOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CorsAllowedOrigins = append(cfg.CorsAllowedOrigins, origin)
			}
		}
	}
	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}

	return cfg
}

// StorageConfigured reports whether a storage backend can be built.
func (c *Config) StorageConfigured() bool {
	return c.DatabaseURL != "" || (c.SupabaseURL != "" && c.SupabaseServiceKey != "")
}

func (c *Config) MailConfigured() bool {
	return c.MailHost != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
