package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	JWTSecret     string
	TokenTTL      time.Duration
	SecureCookies bool

	RateLimitWindow  time.Duration
	RateLimitMax     int
	AuthRateLimitMax int

	ProtectedPaths []string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-key-change-in-production"
	}

	return Config{
		Port:             port,
		DatabaseURL:      os.Getenv("DB_DSN"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		JWTSecret:        secret,
		TokenTTL:         readDuration("TOKEN_TTL", 7*24*time.Hour),
		SecureCookies:    readBool("SECURE_COOKIES", false),
		RateLimitWindow:  readDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitMax:     readInt("RATE_LIMIT_MAX", 100),
		AuthRateLimitMax: readInt("AUTH_RATE_LIMIT_MAX", 10),
		ProtectedPaths:   readList("PROTECTED_PATHS", []string{"/checkout", "/orders", "/account"}),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
