package drivers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

func newMemoryRecord(id string) *dindr.SessionRecord {
	return &dindr.SessionRecord{
		SessionID:   id,
		Status:      dindr.StatusActive,
		Restaurants: []dindr.RestaurantWithLikes{},
		Matches:     []dindr.RestaurantWithLikes{},
	}
}

func TestMemoryInsert(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := newMemoryRecord("AAA111")
	require.NoError(t, store.Insert(ctx, rec))

	assert.Equal(t, int64(1), rec.Version)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestMemoryInsert_KeepsGivenCreatedAt(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := newMemoryRecord("AAA111")
	rec.CreatedAt = created
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.Select(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
}

func TestMemoryInsert_Duplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newMemoryRecord("AAA111")))

	err := store.Insert(ctx, newMemoryRecord("AAA111"))
	assert.ErrorIs(t, err, session.ErrSessionExists)
}

func TestMemorySelect_Absent(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Select(context.Background(), "NOPE99")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySelect_DoesNotAliasStoredSlices(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := newMemoryRecord("AAA111")
	rec.Restaurants = []dindr.RestaurantWithLikes{
		{Restaurant: dindr.Restaurant{ID: "r1"}, Likes: 1},
	}
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.Select(ctx, "AAA111")
	require.NoError(t, err)
	got.Restaurants[0].Likes = 99

	again, err := store.Select(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Restaurants[0].Likes)
}

func TestMemoryUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := newMemoryRecord("AAA111")
	require.NoError(t, store.Insert(ctx, rec))

	rec.Restaurants = append(rec.Restaurants, dindr.RestaurantWithLikes{
		Restaurant: dindr.Restaurant{ID: "r1"}, Likes: 1,
	})
	require.NoError(t, store.Update(ctx, rec))
	assert.Equal(t, int64(2), rec.Version)

	got, err := store.Select(ctx, "AAA111")
	require.NoError(t, err)
	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, int64(2), got.Version)
}

func TestMemoryUpdate_VersionConflict(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := newMemoryRecord("AAA111")
	require.NoError(t, store.Insert(ctx, rec))

	stale := *rec
	require.NoError(t, store.Update(ctx, rec))

	err := store.Update(ctx, &stale)
	assert.ErrorIs(t, err, session.ErrVersionConflict)
}

func TestMemoryUpdate_Absent(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update(context.Background(), newMemoryRecord("NOPE99"))
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newMemoryRecord("AAA111")))
	require.NoError(t, store.Delete(ctx, "AAA111"))

	got, err := store.Select(ctx, "AAA111")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "AAA111"))
}

func TestMemoryDeleteCreatedBefore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	old := newMemoryRecord("OLD111")
	old.CreatedAt = now.Add(-25 * time.Hour)
	require.NoError(t, store.Insert(ctx, old))

	fresh := newMemoryRecord("NEW222")
	fresh.CreatedAt = now.Add(-time.Hour)
	require.NoError(t, store.Insert(ctx, fresh))

	require.NoError(t, store.DeleteCreatedBefore(ctx, now.Add(-24*time.Hour)))

	gone, err := store.Select(ctx, "OLD111")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := store.Select(ctx, "NEW222")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
