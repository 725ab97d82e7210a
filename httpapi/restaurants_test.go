package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dindr "github.com/dindr/services"
)

type stubSearcher struct {
	restaurants []dindr.Restaurant
	err         error

	gotZipcode string
	gotRadius  float64
}

func (s *stubSearcher) Search(ctx context.Context, zipcode string, radius float64) ([]dindr.Restaurant, error) {
	s.gotZipcode = zipcode
	s.gotRadius = radius
	return s.restaurants, s.err
}

func postSearch(t *testing.T, handler http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/restaurants/search", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	searcher := &stubSearcher{restaurants: []dindr.Restaurant{{ID: "good", Name: "Taqueria La Luna"}}}
	handler := NewDiscoveryHandler(searcher, nil)

	rec := postSearch(t, handler, dindr.SearchRequest{Zipcode: "94110", Radius: 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dindr.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "good", got[0].ID)
	assert.Equal(t, "94110", searcher.gotZipcode)
	assert.Equal(t, float64(5), searcher.gotRadius)
}

func TestSearchEndpoint_ZipcodeValidation(t *testing.T) {
	handler := NewDiscoveryHandler(&stubSearcher{}, nil)

	for _, zipcode := range []string{"", "9411", "94110-12", "abcde"} {
		rec := postSearch(t, handler, dindr.SearchRequest{Zipcode: zipcode, Radius: 5})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "zipcode %q", zipcode)
		assert.JSONEq(t, `{"error": "Invalid zipcode provided"}`, rec.Body.String())
	}

	// Plus-four form is valid.
	rec := postSearch(t, handler, dindr.SearchRequest{Zipcode: "94110-1234", Radius: 5})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchEndpoint_RadiusValidation(t *testing.T) {
	handler := NewDiscoveryHandler(&stubSearcher{}, nil)

	for _, radius := range []float64{0, 0.5, 26, -3} {
		rec := postSearch(t, handler, dindr.SearchRequest{Zipcode: "94110", Radius: radius})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "radius %v", radius)
		assert.JSONEq(t, `{"error": "Radius must be between 1 and 25 miles"}`, rec.Body.String())
	}
}

func TestSearchEndpoint_ProviderFailure(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("places unavailable")}
	handler := NewDiscoveryHandler(searcher, nil)

	rec := postSearch(t, handler, dindr.SearchRequest{Zipcode: "94110", Radius: 5})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to search restaurants", body.Error)
	assert.Equal(t, "places unavailable", body.Message)
}

func TestSearchEndpoint_Health(t *testing.T) {
	handler := NewDiscoveryHandler(&stubSearcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
