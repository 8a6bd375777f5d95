package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	SQLite  DatabaseType = "sqlite"
	MongoDB DatabaseType = "mongodb"
)

type Config struct {
	Port         string
	DatabaseType DatabaseType
	// SQLite config
	SQLitePath string
	// MongoDB config
	MongoURI     string
	DatabaseName string
	// Auth config
	JWTSecret  string
	BcryptCost int
	// Prefix for generated photo URLs, e.g. "https://tripvault.example.com".
	BaseURL string
}

// Load reads configuration from the environment. A .env file is loaded
// first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	dbType := DatabaseType(envOrDefault("DATABASE_TYPE", string(SQLite)))
	if dbType != SQLite && dbType != MongoDB {
		return nil, fmt.Errorf("DATABASE_TYPE must be %q or %q, got %q", SQLite, MongoDB, dbType)
	}

	cfg := &Config{
		Port:         envOrDefault("PORT", "8080"),
		DatabaseType: dbType,
		SQLitePath:   envOrDefault("SQLITE_PATH", "tripvault.db"),
		DatabaseName: envOrDefault("DATABASE_NAME", "tripvault"),
		JWTSecret:    jwtSecret,
		BcryptCost:   12,
		BaseURL:      os.Getenv("BASE_URL"),
	}

	if cfg.DatabaseType == MongoDB {
		cfg.MongoURI = os.Getenv("MONGODB_URI")
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set")
		}
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
