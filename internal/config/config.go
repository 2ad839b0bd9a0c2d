// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// PasswordScheme selects the password hashing scheme for new credentials.
type PasswordScheme string

const (
	// PasswordSchemeSHA256 is the legacy unsalted SHA-256 hex scheme. It is
	// the default because existing databases store credentials in this form.
	PasswordSchemeSHA256 PasswordScheme = "sha256"
	// PasswordSchemeArgon2id is the salted argon2id scheme recommended for
	// new installations.
	PasswordSchemeArgon2id PasswordScheme = "argon2id"
)

// Config holds application configuration
type Config struct {
	// Environment: "production" or "development"
	Env string

	// Database
	DBPath string

	// Hashing scheme used for newly created credentials
	PasswordScheme PasswordScheme
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:    getEnv("ENV", "development"),
		DBPath: getEnv("DB_PATH", "fintrack.db"),
	}

	scheme := PasswordScheme(getEnv("PASSWORD_SCHEME", string(PasswordSchemeSHA256)))
	switch scheme {
	case PasswordSchemeSHA256, PasswordSchemeArgon2id:
		config.PasswordScheme = scheme
	default:
		log.Printf("Warning: unknown PASSWORD_SCHEME '%s', falling back to sha256\n", scheme)
		config.PasswordScheme = PasswordSchemeSHA256
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
