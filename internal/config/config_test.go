package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 10, cfg.AuthRateLimitMax)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, []string{"/checkout", "/orders", "/account"}, cfg.ProtectedPaths)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("AUTH_RATE_LIMIT_MAX", "2")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("PROTECTED_PATHS", "/checkout, /admin")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 2, cfg.AuthRateLimitMax)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, []string{"/checkout", "/admin"}, cfg.ProtectedPaths)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("SECURE_COOKIES", "probably")

	cfg := Load()

	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.SecureCookies)
}
