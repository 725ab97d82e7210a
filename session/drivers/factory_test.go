package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dindr/services/session"
)

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(StoreTypeMemory)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestNewStore_RedisRequiresClient(t *testing.T) {
	_, err := NewStore(StoreTypeRedis)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestNewStore_SupabaseRequiresConfig(t *testing.T) {
	_, err := NewStore(StoreTypeSupabase)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)

	_, err = NewStore(StoreTypeSupabase, WithSupabase("https://example.supabase.co", ""))
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestNewStore_UnknownType(t *testing.T) {
	_, err := NewStore(StoreType("dynamo"))
	assert.ErrorIs(t, err, session.ErrInvalidStoreType)
}
