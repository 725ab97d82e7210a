package session

import (
	"context"
	"time"

	dindr "github.com/dindr/services"
)

// Store defines the interface for session persistence.
type Store interface {
	// Insert creates a new session row with Version set to 1. If
	// CreatedAt is zero it is set to the current time.
	// Returns ErrSessionExists if the session id is already taken.
	Insert(ctx context.Context, rec *dindr.SessionRecord) error

	// Select retrieves a session by id.
	// Returns nil if the session is not found (not an error).
	Select(ctx context.Context, sessionID string) (*dindr.SessionRecord, error)

	// Update persists the restaurants and matches of an existing
	// session with optimistic locking: the stored version must match
	// rec.Version, and both are incremented on success.
	// Returns ErrVersionConflict if the version does not match.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, rec *dindr.SessionRecord) error

	// Delete deletes a session by id. Deleting an absent session is
	// not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteCreatedBefore deletes every session created before the
	// cutoff. Used by the best-effort expiration sweep.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) error

	// Close closes the store and releases any resources.
	Close() error
}
