package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv               string
	Port                 string
	LogLevel             string
	BackendURL           string
	BackendTimeout       time.Duration
	RedisURL             string
	RedisAddr            string
	RedisPassword        string
	CatalogCacheTTL      time.Duration
	SaleDraftTTL         time.Duration
	JWTSecret            string
	JWTExpiry            time.Duration
	OperatorUser         string
	OperatorPasswordHash string
	OriginURL            string
	MaxResponseBytes     int64
}

var AppConfig *Config

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxResponseBytes, _ := strconv.ParseInt(os.Getenv("MAX_RESPONSE_BYTES"), 10, 64)
	if maxResponseBytes <= 0 {
		maxResponseBytes = 4 << 20
	}

	AppConfig = &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("APP_PORT", getEnv("PORT", "8090")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		BackendURL:           getEnv("BACKEND_URL", "http://localhost:8080"),
		BackendTimeout:       getDuration("BACKEND_TIMEOUT", 10*time.Second),
		RedisURL:             os.Getenv("REDIS_URL"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		CatalogCacheTTL:      getDuration("CATALOG_CACHE_TTL", 30*time.Second),
		SaleDraftTTL:         getDuration("SALE_DRAFT_TTL", 30*time.Minute),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		JWTExpiry:            getDuration("JWT_EXPIRY", 12*time.Hour),
		OperatorUser:         os.Getenv("OPERATOR_USER"),
		OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		OriginURL:            os.Getenv("ORIGIN_URL"),
		MaxResponseBytes:     maxResponseBytes,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Backend API: %s", AppConfig.BackendURL)
	return AppConfig
}

// AuthEnabled reports whether an operator credential is configured.
func (c *Config) AuthEnabled() bool {
	return c.OperatorUser != "" && c.OperatorPasswordHash != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
