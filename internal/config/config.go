package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string

	SendGridAPIKey   string
	DefaultFromEmail string

	FrontendURL string
	CORSOrigin  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		AppPort:             getEnv("APP_PORT", "8000"),
		AppEnv:              getEnv("APP_ENV", "development"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AccessTokenTTL:      minutesEnv("ACCESS_TOKEN_TTL", 60),
		RefreshTokenTTL:     minutesEnv("REFRESH_TOKEN_TTL", 24*60),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SendGridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		DefaultFromEmail:    getEnv("DEFAULT_FROM_EMAIL", "noreply@bookstore.local"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigin:          getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// minutesEnv reads a TTL expressed in minutes.
func minutesEnv(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Minute
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(n) * time.Minute
}
