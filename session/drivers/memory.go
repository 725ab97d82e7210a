// Package drivers provides session.Store implementations: an in-memory
// map for tests and single-process runs, Redis, and Supabase.
package drivers

import (
	"context"
	"slices"
	"sync"
	"time"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

// MemoryStore implements session.Store using an in-memory map with
// optimistic locking.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*dindr.SessionRecord
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*dindr.SessionRecord),
	}
}

// Insert implements session.Store.
func (s *MemoryStore) Insert(ctx context.Context, rec *dindr.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[rec.SessionID]; exists {
		return session.ErrSessionExists
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.Version = 1

	s.sessions[rec.SessionID] = cloneRecord(rec)
	return nil
}

// Select implements session.Store.
// Returns nil if the session is not found (not an error).
func (s *MemoryStore) Select(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.sessions[sessionID]
	if !exists {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

// Update implements session.Store.
// Verifies the version for optimistic locking, increments it, and
// persists the record.
func (s *MemoryStore) Update(ctx context.Context, rec *dindr.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[rec.SessionID]
	if !exists {
		return session.ErrNotFound
	}

	if stored.Version != rec.Version {
		return session.ErrVersionConflict
	}

	rec.Version++
	s.sessions[rec.SessionID] = cloneRecord(rec)
	return nil
}

// Delete implements session.Store.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// DeleteCreatedBefore implements session.Store.
func (s *MemoryStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.sessions {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Close implements session.Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}

// cloneRecord copies a record so callers never alias stored slices.
func cloneRecord(rec *dindr.SessionRecord) *dindr.SessionRecord {
	clone := *rec
	clone.Restaurants = slices.Clone(rec.Restaurants)
	clone.Matches = slices.Clone(rec.Matches)
	return &clone
}

// Compile-time check that MemoryStore implements session.Store.
var _ session.Store = (*MemoryStore)(nil)
