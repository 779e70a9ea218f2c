package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "migrations", cfg.Server.MigrationsDir)
	assert.Equal(t, "gleaming-gallery", cfg.Session.KeyPrefix)
	assert.Equal(t, time.Hour, cfg.Session.AdminTTL)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
	assert.Equal(t, 30*time.Minute, cfg.Payment.SessionTTL)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 60, cfg.RateLimit.Requests)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_ID", "checkout-7")
	t.Setenv("PAYMENT_SESSION_TTL", "5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "checkout-7", cfg.Session.ID)
	assert.Equal(t, 5*time.Minute, cfg.Payment.SessionTTL)
}
