package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Equal(t, "http", cfg.PredictProvider)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"moderators"}, cfg.EscalationRecipients)
	assert.Equal(t, "data/knowledge.json", cfg.ExportPath)
	assert.Zero(t, cfg.ExportInterval)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, "localhost:4318", cfg.TracingEndpoint)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ESCALATION_RECIPIENTS", "mods, admins ,oncall")
	t.Setenv("PREDICT_PROVIDER", "openai")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"mods", "admins", "oncall"}, cfg.EscalationRecipients)
	assert.Equal(t, "openai", cfg.PredictProvider)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
