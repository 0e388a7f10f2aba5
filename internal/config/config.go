package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DataFile    string
	JWTSecret   string
	TokenTTL    time.Duration
	Environment string
	SeedUsers   bool
}

// LoadConfig reads configuration from the environment, with a best-effort
// .env load first. Defaults are for local development only.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	return &Config{
		Port:        getEnv("PORT", "5000"),
		DataFile:    getEnv("DATA_FILE", "data.json"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
		TokenTTL:    time.Duration(ttlHours) * time.Hour,
		Environment: getEnv("ENVIRONMENT", "development"),
		SeedUsers:   getEnv("SEED_USERS", "true") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
