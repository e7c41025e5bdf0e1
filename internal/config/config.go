package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	AppEnv       string
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration
	JWTSecret    string
	JWTExpire    time.Duration
	FrontendURLs []string
	LogLevel     string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		AppEnv:            getEnv("APP_ENV", "development"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "sahyogi"),
		MongoTimeout:      time.Duration(getEnvAsInt("MONGO_TIMEOUT_SECONDS", 10)) * time.Second,
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTExpire:         time.Duration(getEnvAsInt("JWT_EXPIRE_HOURS", 48)) * time.Hour,
		FrontendURLs:      splitList(getEnv("FRONTEND_URLS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		AdminName:         getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
	}

	// A development secret is fine locally, never in production
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = "sahyogi-dev-secret"
	}

	return cfg
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

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
