package discovery

import (
	"log/slog"
	"net/http"
)

// Option is a functional option for configuring the discovery client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURLs overrides the Places and Geocoding endpoints. Used by
// tests to point the client at a fake provider.
func WithBaseURLs(placesBaseURL, geocodeURL string) Option {
	return func(c *Client) {
		if placesBaseURL != "" {
			c.placesBaseURL = placesBaseURL
		}
		if geocodeURL != "" {
			c.geocodeURL = geocodeURL
		}
	}
}

// WithCache attaches a search result cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger for skipped-place warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
