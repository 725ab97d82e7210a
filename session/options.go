package session

import (
	"log/slog"
	"time"
)

// ServiceOption is a functional option for configuring the action processor.
type ServiceOption func(*Service)

// WithLogger sets the logger used for sweep and cleanup warnings.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Used by tests to age sessions.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExpiration overrides the 24-hour expiration window.
func WithExpiration(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.expiration = d
		}
	}
}
