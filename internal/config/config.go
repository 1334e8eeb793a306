package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration. It is built once in main and
// passed explicitly to the components that need it.
type Config struct {
	ServerPort   int
	DatabasePath string
	UploadDir    string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
}

// Load loads configuration from the environment (and a .env file when
// present) or sets defaults.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlMinutes, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "30"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./internhub.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:     time.Duration(ttlMinutes) * time.Minute,
		BcryptCost:   cost,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
