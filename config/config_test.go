package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessions_Defaults(t *testing.T) {
	cfg, err := ParseSessions()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4002", cfg.Addr())
	assert.Equal(t, "supabase", cfg.Store)
}

func TestParseSessions_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := ParseSessions()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "memory", cfg.Store)
}

func TestParseSessions_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := ParseSessions()
	assert.Error(t, err)
}

func TestSessions_SupabaseKeyFallback(t *testing.T) {
	cfg := Sessions{SupabaseAnonKey: "anon"}
	assert.Equal(t, "anon", cfg.SupabaseKey())

	cfg.SupabaseServiceRoleKey = "service-role"
	assert.Equal(t, "service-role", cfg.SupabaseKey())
}

func TestParseDiscovery_Defaults(t *testing.T) {
	cfg, err := ParseDiscovery()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4001", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestParseDiscovery_Env(t *testing.T) {
	t.Setenv("GOOGLE_PLACES_API_KEY", "key123")
	t.Setenv("DISCOVERY_CACHE_TTL", "30s")

	cfg, err := ParseDiscovery()
	require.NoError(t, err)

	assert.Equal(t, "key123", cfg.PlacesAPIKey)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}
