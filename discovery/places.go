// Package discovery finds nearby restaurants for a zipcode by way of
// the Google Geocoding and Places APIs, normalizing provider results
// into the shared Restaurant contract.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	dindr "github.com/dindr/services"
)

const (
	defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"
	defaultGeocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"

	// requestTimeout bounds each provider round trip.
	requestTimeout = 10 * time.Second

	// metersPerMile converts the caller's radius to the meters the
	// Places API expects.
	metersPerMile = 1609.34

	// detailsFields is the field mask requested per place.
	detailsFields = "name,types,formatted_address,geometry,rating,price_level,photos"
)

// Client searches restaurants near a zipcode.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	placesBaseURL string
	geocodeURL    string
	cache         Cache
	logger        *slog.Logger
}

// New creates a discovery client for the given Places API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("places API key is required")
	}

	c := &Client{
		httpClient:    &http.Client{},
		apiKey:        apiKey,
		placesBaseURL: defaultPlacesBaseURL,
		geocodeURL:    defaultGeocodeURL,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type googleGeometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type googlePlace struct {
	PlaceID    string         `json:"place_id"`
	Name       string         `json:"name"`
	Vicinity   string         `json:"vicinity"`
	Geometry   googleGeometry `json:"geometry"`
	Types      []string       `json:"types"`
	PriceLevel int            `json:"price_level"`
	Rating     float64        `json:"rating"`
	Photos     []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

type placeDetails struct {
	googlePlace
	FormattedAddress string `json:"formatted_address"`
}

// Search geocodes the zipcode, finds restaurants within the radius
// (miles), and resolves per-place details. Places whose details lookup
// fails are skipped rather than failing the whole search.
func (c *Client) Search(ctx context.Context, zipcode string, radius float64) ([]dindr.Restaurant, error) {
	key := searchCacheKey(zipcode, radius)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	location, err := c.geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}

	places, err := c.nearbySearch(ctx, location, radius)
	if err != nil {
		return nil, err
	}

	results := make([]*dindr.Restaurant, len(places))
	var wg sync.WaitGroup
	for i, place := range places {
		wg.Add(1)
		go func() {
			defer wg.Done()
			restaurant, err := c.buildRestaurant(ctx, location, place)
			if err != nil {
				c.logger.WarnContext(ctx, "skipping place without details",
					"place", place.Name, "error", err)
				return
			}
			results[i] = restaurant
		}()
	}
	wg.Wait()

	restaurants := make([]dindr.Restaurant, 0, len(places))
	for _, r := range results {
		if r != nil {
			restaurants = append(restaurants, *r)
		}
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, restaurants)
	}
	return restaurants, nil
}

// geocode resolves a zipcode to coordinates.
func (c *Client) geocode(ctx context.Context, zipcode string) (dindr.Location, error) {
	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry googleGeometry `json:"geometry"`
		} `json:"results"`
	}

	params := url.Values{}
	params.Set("address", zipcode)
	params.Set("key", c.apiKey)

	if err := c.getJSON(ctx, c.geocodeURL, params, &payload); err != nil {
		return dindr.Location{}, fmt.Errorf("failed to fetch geocode data: %w", err)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return dindr.Location{}, fmt.Errorf("failed to geocode zipcode: %s", payload.Status)
	}

	loc := payload.Results[0].Geometry.Location
	return dindr.Location{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// nearbySearch lists restaurants around a location.
func (c *Client) nearbySearch(ctx context.Context, location dindr.Location, radius float64) ([]googlePlace, error) {
	var payload struct {
		Status  string        `json:"status"`
		Results []googlePlace `json:"results"`
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", location.Latitude, location.Longitude))
	params.Set("radius", fmt.Sprintf("%d", int(radius*metersPerMile)))
	params.Set("type", "restaurant")
	params.Set("key", c.apiKey)

	if err := c.getJSON(ctx, c.placesBaseURL+"/nearbysearch/json", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch restaurants from google places: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("google places api error: %s", payload.Status)
	}
	return payload.Results, nil
}

// placeDetails fetches the detail record for one place.
func (c *Client) placeDetails(ctx context.Context, placeID string) (*placeDetails, error) {
	var payload struct {
		Result placeDetails `json:"result"`
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.apiKey)

	if err := c.getJSON(ctx, c.placesBaseURL+"/details/json", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch place details: %w", err)
	}
	return &payload.Result, nil
}

// buildRestaurant maps a place plus its details onto the contract type.
func (c *Client) buildRestaurant(ctx context.Context, origin dindr.Location, place googlePlace) (*dindr.Restaurant, error) {
	details, err := c.placeDetails(ctx, place.PlaceID)
	if err != nil {
		return nil, err
	}

	address := details.FormattedAddress
	if address == "" {
		address = place.Vicinity
	}

	types := details.Types
	if len(types) == 0 {
		types = place.Types
	}

	priceRange := "$$"
	if place.PriceLevel > 0 {
		priceRange = strings.Repeat("$", place.PriceLevel)
	}

	var imageURL *string
	if len(place.Photos) > 0 && place.Photos[0].PhotoReference != "" {
		u := fmt.Sprintf("%s/photo?maxwidth=400&photo_reference=%s&key=%s",
			c.placesBaseURL, place.Photos[0].PhotoReference, c.apiKey)
		imageURL = &u
	}

	placeLoc := dindr.Location{
		Latitude:  place.Geometry.Location.Lat,
		Longitude: place.Geometry.Location.Lng,
	}

	return &dindr.Restaurant{
		ID:          place.PlaceID,
		Name:        place.Name,
		Description: place.Vicinity,
		Address:     address,
		Latitude:    placeLoc.Latitude,
		Longitude:   placeLoc.Longitude,
		Cuisine:     CuisineLabel(types),
		PriceRange:  priceRange,
		Rating:      place.Rating,
		ImageURL:    imageURL,
		Distance:    Distance(origin, placeLoc),
	}, nil
}

// getJSON issues one GET with the fixed per-call timeout and decodes
// the JSON body into target.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, target any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
