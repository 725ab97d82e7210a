package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

// SessionsClient calls the sessions service.
type SessionsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSessionsClient creates a client for the sessions service at baseURL.
func NewSessionsClient(baseURL string, httpClient *http.Client) (*SessionsClient, error) {
	baseURL, err := normalizeBaseURL(baseURL, "sessions service")
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SessionsClient{baseURL: baseURL, httpClient: httpClient}, nil
}

// Do submits a raw session action and returns the envelope data field.
func (c *SessionsClient) Do(ctx context.Context, req dindr.SessionRequest) (json.RawMessage, error) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/sessions", req, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("session action was not successful")
	}
	return envelope.Data, nil
}

// Create creates a new session under the given code.
func (c *SessionsClient) Create(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	return c.doRecord(ctx, dindr.SessionRequest{SessionID: sessionID, Action: dindr.ActionCreate})
}

// Validate reports whether the session exists and has not expired.
func (c *SessionsClient) Validate(ctx context.Context, sessionID string) (bool, error) {
	data, err := c.Do(ctx, dindr.SessionRequest{SessionID: sessionID, Action: dindr.ActionValidate})
	if err != nil {
		return false, err
	}
	var result session.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return false, fmt.Errorf("failed to decode validation result: %w", err)
	}
	return result.Exists, nil
}

// Join reads the full session record.
func (c *SessionsClient) Join(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	return c.doRecord(ctx, dindr.SessionRequest{SessionID: sessionID, Action: dindr.ActionJoin})
}

// UpdateRestaurant submits one like for a restaurant.
func (c *SessionsClient) UpdateRestaurant(ctx context.Context, sessionID string, restaurant dindr.Restaurant) (*dindr.SessionRecord, error) {
	return c.doRecord(ctx, dindr.SessionRequest{
		SessionID:  sessionID,
		Action:     dindr.ActionUpdateRestaurant,
		Restaurant: &restaurant,
	})
}

// ClearMatches resets the session's matches and accumulated likes.
func (c *SessionsClient) ClearMatches(ctx context.Context, sessionID string) (*dindr.SessionRecord, error) {
	return c.doRecord(ctx, dindr.SessionRequest{SessionID: sessionID, Action: dindr.ActionClearMatches})
}

func (c *SessionsClient) doRecord(ctx context.Context, req dindr.SessionRequest) (*dindr.SessionRecord, error) {
	data, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var rec dindr.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	return &rec, nil
}
