package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

const (
	defaultAppPort  = "8080" // Used when APP_PORT is unset
	defaultCacheTTL = 60     // Seconds, matches the wallet view cache lifetime
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	JWTSecret  string        // JWT secret key
	RedisAddr  string        // Redis server address
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	NatsURL    string        // NATS server URL, empty disables event publishing
	CacheTTL   time.Duration // TTL for cached wallet views and history pages
	IsProd     bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getenv("APP_PORT", defaultAppPort),       // Application port
		DBUser:     os.Getenv("DB_USER"),                     // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                 // Database password
		DBHost:     os.Getenv("DB_HOST"),                     // Database host
		DBPort:     os.Getenv("DB_PORT"),                     // Database port
		DBName:     os.Getenv("DB_NAME"),                     // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),                  // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),                  // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                  // Redis password
		RedisDB:    redisDB,                                  // Redis database number
		NatsURL:    os.Getenv("NATS_URL"),                    // NATS server URL
		CacheTTL:   cacheTTL(os.Getenv("CACHE_TTL_SECONDS")), // Cache TTL
		IsProd:     os.Getenv("IS_PROD") == "true",           // Is production environment
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// cacheTTL parses a positive number of seconds, falling back to the default
func cacheTTL(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		seconds = defaultCacheTTL
	}
	return time.Duration(seconds) * time.Second
}
