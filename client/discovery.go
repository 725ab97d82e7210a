package client

import (
	"context"
	"net/http"

	dindr "github.com/dindr/services"
)

// DiscoveryClient calls the discovery service.
type DiscoveryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDiscoveryClient creates a client for the discovery service at baseURL.
func NewDiscoveryClient(baseURL string, httpClient *http.Client) (*DiscoveryClient, error) {
	baseURL, err := normalizeBaseURL(baseURL, "discovery service")
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DiscoveryClient{baseURL: baseURL, httpClient: httpClient}, nil
}

// Search finds restaurants near a zipcode within a radius in miles.
func (c *DiscoveryClient) Search(ctx context.Context, zipcode string, radius float64) ([]dindr.Restaurant, error) {
	req := dindr.SearchRequest{Zipcode: zipcode, Radius: radius}

	var restaurants []dindr.Restaurant
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/restaurants/search", req, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}
