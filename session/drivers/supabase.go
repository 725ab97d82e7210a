package drivers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

// sessionsTable is the Supabase table holding session rows. Clients
// watch the same table through the realtime change feed, so every
// write made here is visible to subscribers without extra plumbing.
const sessionsTable = "sessions"

// SupabaseConfig holds Supabase connection configuration.
type SupabaseConfig struct {
	URL    string
	APIKey string
}

// SupabaseStore implements session.Store using a Supabase sessions table.
type SupabaseStore struct {
	client *supabase.Client
}

// NewSupabaseStore creates a new Supabase-backed session store.
func NewSupabaseStore(cfg SupabaseConfig) (*SupabaseStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required: %w", session.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required: %w", session.ErrInvalidConfig)
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseStore{client: client}, nil
}

// Insert implements session.Store.
// The table enforces session_id uniqueness; a duplicate insert maps to
// ErrSessionExists.
func (s *SupabaseStore) Insert(ctx context.Context, rec *dindr.SessionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.Version = 1

	row := map[string]any{
		"session_id":  rec.SessionID,
		"status":      rec.Status,
		"restaurants": rec.Restaurants,
		"matches":     rec.Matches,
		"created_at":  rec.CreatedAt.UTC().Format(time.RFC3339),
		"version":     rec.Version,
	}

	var inserted []dindr.SessionRecord
	_, err := s.client.From(sessionsTable).
		Insert([]map[string]any{row}, false, "", "representation", "").
		ExecuteTo(&inserted)

	if err != nil {
		if isUniqueViolation(err) {
			return session.ErrSessionExists
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	if len(inserted) > 0 {
		rec.ID = inserted[0].ID
	}
	return nil
}

// Select implements session.Store.
// Returns nil if the session is not found (not an error).
func (s *SupabaseStore) Select(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	var recs []dindr.SessionRecord
	_, err := s.client.From(sessionsTable).
		Select("*", "", false).
		Eq("session_id", sessionID).
		ExecuteTo(&recs)

	if err != nil {
		return nil, fmt.Errorf("failed to select session: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// Update implements session.Store.
// The update is conditional on the stored version, so a concurrent
// writer cannot silently clobber this write.
func (s *SupabaseStore) Update(ctx context.Context, rec *dindr.SessionRecord) error {
	patch := map[string]any{
		"restaurants": rec.Restaurants,
		"matches":     rec.Matches,
		"version":     rec.Version + 1,
	}

	var updated []dindr.SessionRecord
	_, err := s.client.From(sessionsTable).
		Update(patch, "representation", "").
		Eq("session_id", rec.SessionID).
		Eq("version", strconv.FormatInt(rec.Version, 10)).
		ExecuteTo(&updated)

	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if len(updated) == 0 {
		// No row matched: either the session is gone or someone else
		// bumped the version first.
		current, selErr := s.Select(ctx, rec.SessionID)
		if selErr != nil {
			return selErr
		}
		if current == nil {
			return session.ErrNotFound
		}
		return session.ErrVersionConflict
	}

	rec.Version = updated[0].Version
	return nil
}

// Delete implements session.Store.
func (s *SupabaseStore) Delete(ctx context.Context, sessionID string) error {
	var deleted []dindr.SessionRecord
	_, err := s.client.From(sessionsTable).
		Delete("representation", "").
		Eq("session_id", sessionID).
		ExecuteTo(&deleted)

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteCreatedBefore implements session.Store.
func (s *SupabaseStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) error {
	var deleted []dindr.SessionRecord
	_, err := s.client.From(sessionsTable).
		Delete("representation", "").
		Lt("created_at", cutoff.UTC().Format(time.RFC3339)).
		ExecuteTo(&deleted)

	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// Close implements session.Store.
func (s *SupabaseStore) Close() error {
	// The Supabase client doesn't require explicit close.
	return nil
}

// isUniqueViolation reports whether a postgrest error is a duplicate
// key violation (Postgres error code 23505).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// Compile-time check that SupabaseStore implements session.Store.
var _ session.Store = (*SupabaseStore)(nil)
