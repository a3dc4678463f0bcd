package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SIGNIN_LOCKOUT", "")
	t.Setenv("MAX_PAGE_SIZE", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.SignInLockout)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SIGNIN_LOCKOUT", "2m")
	t.Setenv("MAX_PAGE_SIZE", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2*time.Minute, cfg.SignInLockout)
	assert.Equal(t, 100, cfg.MaxPageSize, "invalid ints fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "institute:name:Tech U", CacheKey.InstituteByNameKey("Tech U"))
	assert.Equal(t, "session:Admin:a@b.co", CacheKey.SessionKey("Admin", "a@b.co"))
	assert.Equal(t, "signin:attempts:Student:s@b.co", CacheKey.SignInAttemptsKey("Student", "s@b.co"))
}
