package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all process configuration. It is read from the environment
// once at startup and passed into components; nothing reads env vars after
// Load returns.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	Env         string
	LogLevel    string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	FrontendURL string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	AuthRateRequests  int
	AuthRateWindow    time.Duration
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func Load() Config {
	return Config{
		HTTPPort:    getenv("HTTP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         getenv("ENV", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTTTL:     getduration("JWT_EXPIRES_IN", 24*time.Hour),
		BcryptCost: getint("BCRYPT_COST", bcrypt.DefaultCost),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		RateLimitRequests: getint("RATE_LIMIT_MAX", 100),
		RateLimitWindow:   getduration("RATE_LIMIT_WINDOW", 15*time.Minute),
		AuthRateRequests:  getint("AUTH_RATE_LIMIT_MAX", 5),
		AuthRateWindow:    getduration("AUTH_RATE_LIMIT_WINDOW", 15*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
