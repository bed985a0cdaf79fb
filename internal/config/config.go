package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode       string
	Port          string
	Database      DatabaseConfig
	JWT           JWTConfig
	FallbackAdmin FallbackAdminConfig
	Cloudinary    CloudinaryConfig
	Redis         RedisConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret            string
	SessionTokenDays  int
	ResetTokenMinutes int
}

// FallbackAdminConfig holds the fixed fallback administrator identity.
// These values are read once at process start and never mutated; the
// fallback admin has no database record.
type FallbackAdminConfig struct {
	Email     string
	Password  string
	SubjectID string
}

// CloudinaryConfig holds media store credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// RedisConfig holds the optional Redis OTP store address. Empty Addr means
// the in-memory store is used.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	sessionDays, _ := strconv.Atoi(getEnv("SESSION_TOKEN_DAYS", "30"))
	resetMins, _ := strconv.Atoi(getEnv("RESET_TOKEN_MINUTES", "60"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(),
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "secret"),
			SessionTokenDays:  sessionDays,
			ResetTokenMinutes: resetMins,
		},
		FallbackAdmin: FallbackAdminConfig{
			Email:     getEnv("FALLBACK_ADMIN_EMAIL", "admingov@gmail.com"),
			Password:  getEnv("FALLBACK_ADMIN_PASSWORD", "admingov123"),
			SubjectID: getEnv("FALLBACK_ADMIN_SUBJECT", "static-admin"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	if config.Cloudinary.APISecret == "" {
		log.Println("⚠️ Cloudinary API secret not set, media uploads will fail")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "civicfix"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
