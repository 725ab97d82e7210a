// Package dindr defines the shared contracts for the dindr backend
// services: the restaurant and session records exchanged between the
// sessions service, the discovery service, and their clients.
package dindr

import "time"

// SessionStatus is the lifecycle state of a session row.
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusInactive SessionStatus = "inactive" // reserved, never set after creation
)

// SessionAction identifies the state transition requested against a session.
type SessionAction string

const (
	ActionCreate           SessionAction = "create"
	ActionValidate         SessionAction = "validate"
	ActionJoin             SessionAction = "join"
	ActionUpdateRestaurant SessionAction = "update_restaurant"
	ActionClearMatches     SessionAction = "clear_matches"
)

// Restaurant describes a place returned by the discovery service and
// submitted as a like to the sessions service.
type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Cuisine     string  `json:"cuisine"`
	PriceRange  string  `json:"price_range"`
	Rating      float64 `json:"rating"`
	ImageURL    *string `json:"image_url"`
	Distance    float64 `json:"distance,omitempty"`
}

// RestaurantWithLikes is a restaurant plus its accumulated like counter
// within one session. The restaurant fields are written once, by the
// first like that introduces the id; later likes only move the counter.
type RestaurantWithLikes struct {
	Restaurant
	Likes int `json:"likes"`
}

// SessionRecord is the durable state of a matching session.
type SessionRecord struct {
	ID          int64                 `json:"id,omitempty"`
	SessionID   string                `json:"session_id"`
	Status      SessionStatus         `json:"status"`
	Restaurants []RestaurantWithLikes `json:"restaurants"`
	Matches     []RestaurantWithLikes `json:"matches"`
	CreatedAt   time.Time             `json:"created_at"`
	Version     int64                 `json:"version"`
}

// SessionRequest is the body of POST /sessions on the sessions service.
type SessionRequest struct {
	SessionID  string        `json:"sessionId"`
	Action     SessionAction `json:"action"`
	Restaurant *Restaurant   `json:"restaurant,omitempty"`
}

// SearchRequest is the body of POST /restaurants/search on the
// discovery service. Radius is in miles.
type SearchRequest struct {
	Zipcode string  `json:"zipcode"`
	Radius  float64 `json:"radius"`
}

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
