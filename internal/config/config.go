package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	SuperAdminEmployeeID string
	SuperAdminName       string
	SuperAdminPassword   string

	// SeedSamples loads the bundled sample templates on boot.
	SeedSamples bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:                os.Getenv("DB_DSN"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SuperAdminEmployeeID: getEnv("SUPER_ADMIN_EMPLOYEE_ID", "admin001"),
		SuperAdminName:       getEnv("SUPER_ADMIN_NAME", "Super Admin"),
		SuperAdminPassword:   getEnv("SUPER_ADMIN_PASSWORD", "Admin123!"),
		SeedSamples:          os.Getenv("SEED_SAMPLES") == "1",
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
