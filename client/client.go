// Package client provides Go clients for the dindr sessions and
// discovery services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// postJSON posts a JSON body and decodes the JSON response into target.
// Non-2xx responses are turned into an error carrying the service's
// error message when one is present in the body.
func postJSON(ctx context.Context, httpClient *http.Client, url string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}

	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// readError extracts the service error message from a failed response.
func readError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return &ServiceError{Status: resp.StatusCode, Message: body.Error}
	}
	return &ServiceError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("service request failed with status %d", resp.StatusCode),
	}
}

// ServiceError is a non-2xx response from a dindr service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

// normalizeBaseURL validates and trims a service base URL.
func normalizeBaseURL(baseURL, serviceName string) (string, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return "", fmt.Errorf("%s base URL is not configured", serviceName)
	}
	return baseURL, nil
}
