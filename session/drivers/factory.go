package drivers

import (
	"github.com/dindr/services/session"
)

// StoreType represents the type of session store.
type StoreType string

const (
	StoreTypeMemory   StoreType = "memory"
	StoreTypeRedis    StoreType = "redis"
	StoreTypeSupabase StoreType = "supabase"
)

// NewStore creates a session.Store of the given type.
// Redis requires WithRedisClient; Supabase requires WithSupabase.
func NewStore(storeType StoreType, opts ...StoreOption) (session.Store, error) {
	config := &storeConfig{}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(), nil

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, session.ErrInvalidConfig
		}
		return NewRedisStore(config.redisClient, config.redisTTL), nil

	case StoreTypeSupabase:
		return NewSupabaseStore(SupabaseConfig{
			URL:    config.supabaseURL,
			APIKey: config.supabaseKey,
		})

	default:
		return nil, session.ErrInvalidStoreType
	}
}
