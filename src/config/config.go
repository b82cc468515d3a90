package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is built once in main and passed explicitly to every
// component that needs it; nothing else reads the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	PlaidClientID string
	PlaidSecret   string
	PlaidEnv      string
	JWTSecret     string
	MigrationKey  string
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		PlaidClientID: getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:   getEnv("PLAID_SECRET", ""),
		PlaidEnv:      getEnv("PLAID_ENV", "sandbox"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		MigrationKey:  getEnv("MIGRATION_KEY", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.PlaidClientID == "" || cfg.PlaidSecret == "" {
		log.Fatal("PLAID_CLIENT_ID and PLAID_SECRET are required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
