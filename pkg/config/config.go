package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Stripe    StripeConfig
	Admin     AdminConfig
	Analytics AnalyticsConfig
	Email     EmailConfig
	BaseURL   string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type StripeConfig struct {
	SecretKey         string
	WebhookSecret     string
	PublishableKey    string
	AmbassadorPriceID string
	FeedbackPriceID   string
	RegularPriceID    string
}

type AdminConfig struct {
	JWTSecret    string
	PasswordHash string
}

type AnalyticsConfig struct {
	Bucket string
	Region string
}

type EmailConfig struct {
	ResendAPIKey string
}

// Load reads configuration from the environment. A missing Stripe secret key
// is not an error: the payment client falls back to demo mode so the flows
// can be exercised without live billing.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey:         getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:     getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PublishableKey:    getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			AmbassadorPriceID: getEnv("STRIPE_AMBASSADOR_PRICE_ID", ""),
			FeedbackPriceID:   getEnv("STRIPE_FEEDBACK_PRICE_ID", ""),
			RegularPriceID:    getEnv("STRIPE_REGULAR_PRICE_ID", ""),
		},
		Admin: AdminConfig{
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", "wellnest-admin-secret"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Analytics: AnalyticsConfig{
			Bucket: getEnv("ANALYTICS_BUCKET", ""),
			Region: getEnv("AWS_REGION", "eu-west-2"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		BaseURL: getEnv("BASE_URL", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
