package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration (local identity cache)
	Redis RedisConfig

	// Session token configuration
	Session SessionConfig

	// CORS configuration
	CORS CORSConfig

	// Fleet business-rule configuration
	Fleet FleetConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// RedisConfig holds Redis connection settings for the session-scoped
// operator identity cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	RefTTL   time.Duration // how long a cached operator reference lives
}

// SessionConfig holds settings for validating tokens issued by the
// external auth service. This backend never mints tokens itself.
type SessionConfig struct {
	Secret string
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// FleetConfig holds the seat-inventory business constants.
//
// The tier offsets, floors and hold ratio are inherited product rules
// with no documented rationale; they are configurable so operations can
// adjust them without a code change, but the defaults must not drift.
type FleetConfig struct {
	UpperDeckOffset  float64 // added to base price for upper deck (negative)
	LadiesOffset     float64 // added to base price for ladies seats
	ReservedOffset   float64 // added to base price for reserved seats
	LowerDeckFloor   float64 // fallback when no base price is available
	UpperDeckFloor   float64
	LadiesFloor      float64
	ReservedFloor    float64
	SeatHoldRatio    float64 // fraction of seats pre-held at bus creation
	AggregateWorkers int     // passenger sub-fetch concurrency
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 20),
			RefTTL:   time.Duration(getEnvAsInt("REDIS_REF_TTL_SECONDS", 86400)) * time.Second,
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Fleet: FleetConfig{
			UpperDeckOffset:  getEnvAsFloat("FLEET_UPPER_DECK_OFFSET", -50),
			LadiesOffset:     getEnvAsFloat("FLEET_LADIES_OFFSET", 100),
			ReservedOffset:   getEnvAsFloat("FLEET_RESERVED_OFFSET", 50),
			LowerDeckFloor:   getEnvAsFloat("FLEET_LOWER_DECK_FLOOR", 750),
			UpperDeckFloor:   getEnvAsFloat("FLEET_UPPER_DECK_FLOOR", 700),
			LadiesFloor:      getEnvAsFloat("FLEET_LADIES_FLOOR", 850),
			ReservedFloor:    getEnvAsFloat("FLEET_RESERVED_FLOOR", 800),
			SeatHoldRatio:    getEnvAsFloat("FLEET_SEAT_HOLD_RATIO", 0.2),
			AggregateWorkers: getEnvAsInt("FLEET_AGGREGATE_WORKERS", 8),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if c.Fleet.SeatHoldRatio < 0 || c.Fleet.SeatHoldRatio >= 1 {
		return fmt.Errorf("FLEET_SEAT_HOLD_RATIO must be in [0, 1)")
	}

	if c.Fleet.AggregateWorkers < 1 {
		return fmt.Errorf("FLEET_AGGREGATE_WORKERS must be at least 1")
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
