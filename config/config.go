// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Sessions configures the sessions service.
type Sessions struct {
	Host  string `env:"HOST" envDefault:"0.0.0.0"`
	Port  int    `env:"PORT" envDefault:"4002"`
	Store string `env:"SESSION_STORE" envDefault:"supabase"`

	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseAnonKey        string `env:"SUPABASE_ANON_KEY"`

	RedisAddr string `env:"REDIS_ADDR"`
}

// Addr is the listen address.
func (c Sessions) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SupabaseKey prefers the service role key, falling back to the anon key.
func (c Sessions) SupabaseKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabaseAnonKey
}

// ParseSessions loads the sessions service configuration.
func ParseSessions() (Sessions, error) {
	var cfg Sessions
	if err := env.Parse(&cfg); err != nil {
		return Sessions{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Discovery configures the discovery service.
type Discovery struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"4001"`

	PlacesAPIKey string `env:"GOOGLE_PLACES_API_KEY"`

	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"DISCOVERY_CACHE_TTL" envDefault:"5m"`
}

// Addr is the listen address.
func (c Discovery) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ParseDiscovery loads the discovery service configuration.
func ParseDiscovery() (Discovery, error) {
	var cfg Discovery
	if err := env.Parse(&cfg); err != nil {
		return Discovery{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
