// Package session implements the matching session protocol: the store
// contract, the action processor that turns per-user like submissions
// into shared match state, and the 24-hour expiration policy.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dindr "github.com/dindr/services"
)

// Expiration is the fixed session lifetime. A session older than this
// is treated as nonexistent by every read path and deleted on sight.
const Expiration = 24 * time.Hour

// ValidationResult is the response of the validate action. It never
// exposes session contents.
type ValidationResult struct {
	Exists bool `json:"exists"`
}

// Service is the session action processor. It loads session state from
// the store, applies the expiration policy, executes the requested
// transition, and persists the result.
type Service struct {
	store      Store
	logger     *slog.Logger
	now        func() time.Time
	expiration time.Duration
}

// NewService creates a session action processor backed by the given store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		expiration: Expiration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleAction dispatches one session action. Before dispatching it
// runs a best-effort sweep of expired sessions; sweep failures are
// logged and never block the action.
func (s *Service) HandleAction(ctx context.Context, req dindr.SessionRequest) (any, error) {
	if req.SessionID == "" {
		return nil, badRequest("Session ID is required")
	}

	s.sweepExpired(ctx)

	switch req.Action {
	case dindr.ActionCreate:
		return s.Create(ctx, req.SessionID)
	case dindr.ActionValidate:
		return s.Validate(ctx, req.SessionID)
	case dindr.ActionJoin:
		return s.Join(ctx, req.SessionID)
	case dindr.ActionUpdateRestaurant:
		if req.Restaurant == nil {
			return nil, badRequest("Restaurant data is required")
		}
		return s.UpdateRestaurant(ctx, req.SessionID, *req.Restaurant)
	case dindr.ActionClearMatches:
		return s.ClearMatches(ctx, req.SessionID)
	default:
		return nil, badRequest("Invalid action")
	}
}

// Create inserts a new active session with empty restaurants and
// matches. A reused session code is rejected with conflict semantics.
func (s *Service) Create(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	rec := &dindr.SessionRecord{
		SessionID:   sessionID,
		Status:      dindr.StatusActive,
		Restaurants: []dindr.RestaurantWithLikes{},
		Matches:     []dindr.RestaurantWithLikes{},
		CreatedAt:   s.now(),
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, ErrSessionExists) {
			return nil, conflictError()
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return rec, nil
}

// Validate reports whether a session exists and is not expired. An
// expired session is deleted and reported as absent; absence is never
// an error on this path.
func (s *Service) Validate(ctx context.Context, sessionID string) (ValidationResult, error) {
	rec, err := s.store.Select(ctx, sessionID)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return ValidationResult{Exists: false}, nil
	}
	if s.expired(rec) {
		s.deleteExpired(ctx, sessionID)
		return ValidationResult{Exists: false}, nil
	}
	return ValidationResult{Exists: true}, nil
}

// Join returns the full session record without mutating it. It is a
// presence-and-validity check that doubles as a read.
func (s *Service) Join(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	rec, err := s.store.Select(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil, notFoundError()
	}
	if s.expired(rec) {
		s.deleteExpired(ctx, sessionID)
		return nil, goneError()
	}
	return rec, nil
}

// UpdateRestaurant records one like for a restaurant. The first like
// for an id stores the full submitted payload with a counter of 1;
// every later like only increments the counter and discards the
// submitted fields (first writer wins). The restaurant enters matches
// the instant its counter reaches exactly 2.
//
// The read-modify-write is guarded by the store's version token and
// retried once on conflict.
func (s *Service) UpdateRestaurant(ctx context.Context, sessionID string, restaurant dindr.Restaurant) (*dindr.SessionRecord, error) {
	rec, err := s.applyLike(ctx, sessionID, restaurant)
	if errors.Is(err, ErrVersionConflict) {
		rec, err = s.applyLike(ctx, sessionID, restaurant)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) applyLike(ctx context.Context, sessionID string, restaurant dindr.Restaurant) (*dindr.SessionRecord, error) {
	rec, err := s.store.Select(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil, notFoundError()
	}
	if s.expired(rec) {
		s.deleteExpired(ctx, sessionID)
		return nil, goneError()
	}

	restaurants := rec.Restaurants
	if restaurants == nil {
		restaurants = []dindr.RestaurantWithLikes{}
	}
	// Normalization against malformed stored rows.
	for i := range restaurants {
		if restaurants[i].Likes < 0 {
			restaurants[i].Likes = 0
		}
	}

	var matched *dindr.RestaurantWithLikes
	index := -1
	for i := range restaurants {
		if restaurants[i].ID == restaurant.ID {
			index = i
			break
		}
	}
	if index == -1 {
		restaurants = append(restaurants, dindr.RestaurantWithLikes{Restaurant: restaurant, Likes: 1})
	} else {
		restaurants[index].Likes++
		// A match is the counter crossing exactly 2; a third or later
		// like never re-matches.
		if restaurants[index].Likes == 2 {
			matched = &restaurants[index]
		}
	}

	rec.Restaurants = restaurants
	if rec.Matches == nil {
		rec.Matches = []dindr.RestaurantWithLikes{}
	}
	if matched != nil {
		rec.Matches = append(rec.Matches, *matched)
	}

	if err := s.store.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError()
		}
		if errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return rec, nil
}

// ClearMatches resets both matches and restaurants to empty, wiping
// every accumulated like for the session. There is deliberately no
// expiration check on this path.
func (s *Service) ClearMatches(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	rec, err := s.store.Select(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil, notFoundError()
	}

	rec.Restaurants = []dindr.RestaurantWithLikes{}
	rec.Matches = []dindr.RestaurantWithLikes{}

	if err := s.store.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	return rec, nil
}

// expired reports whether the session has outlived the expiration window.
func (s *Service) expired(rec *dindr.SessionRecord) bool {
	return s.now().Sub(rec.CreatedAt) > s.expiration
}

// deleteExpired eagerly removes an expired session. Failures are
// swallowed: the session is already invisible to every read path.
func (s *Service) deleteExpired(ctx context.Context, sessionID string) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete expired session",
			"session_id", sessionID, "error", err)
	}
}

// sweepExpired deletes all sessions older than the expiration window.
// Best effort: errors are logged, never propagated.
func (s *Service) sweepExpired(ctx context.Context) {
	cutoff := s.now().Add(-s.expiration)
	if err := s.store.DeleteCreatedBefore(ctx, cutoff); err != nil {
		s.logger.WarnContext(ctx, "expired session sweep failed", "error", err)
	}
}
