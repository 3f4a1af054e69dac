package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, read once at process start.
type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	TokenTTL  time.Duration

	// Messaging provider (Vonage WhatsApp API)
	VonageAPIURL         string
	VonageAPIKey         string
	VonageAPISecret      string
	VonageWhatsAppNumber string
	VonageJWTSecret      string

	// Inbound webhook basic-auth credentials
	WebhookUsername string
	WebhookPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pmuser"),
		DBPassword: getEnv("DB_PASSWORD", "pmpassword"),
		DBName:     getEnv("DB_NAME", "project_management"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "supersecretkey"),
		TokenTTL:  getDuration("JWT_EXPIRATION", 10*time.Hour),

		VonageAPIURL:         getEnv("VONAGE_API_URL", "https://messages-sandbox.nexmo.com/v0.1/messages"),
		VonageAPIKey:         getEnv("VONAGE_API_KEY", ""),
		VonageAPISecret:      getEnv("VONAGE_API_SECRET", ""),
		VonageWhatsAppNumber: getEnv("VONAGE_WHATSAPP_NUMBER", ""),
		VonageJWTSecret:      getEnv("VONAGE_JWT_SECRET", ""),

		WebhookUsername: getEnv("VONAGE_WEBHOOK_USERNAME", ""),
		WebhookPassword: getEnv("VONAGE_WEBHOOK_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
