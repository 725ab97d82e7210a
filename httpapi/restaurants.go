package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	dindr "github.com/dindr/services"
)

// zipcodeRe accepts 5-digit US zipcodes with an optional plus-four.
var zipcodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Searcher finds restaurants near a zipcode within a radius in miles.
type Searcher interface {
	Search(ctx context.Context, zipcode string, radius float64) ([]dindr.Restaurant, error)
}

// DiscoveryHandler serves the discovery service API.
type DiscoveryHandler struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewDiscoveryHandler builds the HTTP handler for the discovery service.
func NewDiscoveryHandler(searcher Searcher, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &DiscoveryHandler{searcher: searcher, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /restaurants/search", h.handleSearch)
	mux.HandleFunc("GET /health", handleHealth)
	return withRequestLogging(logger, mux)
}

func (h *DiscoveryHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req dindr.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !zipcodeRe.MatchString(req.Zipcode) {
		writeError(w, http.StatusBadRequest, "Invalid zipcode provided")
		return
	}
	if req.Radius < 1 || req.Radius > 25 {
		writeError(w, http.StatusBadRequest, "Radius must be between 1 and 25 miles")
		return
	}

	h.logger.InfoContext(r.Context(), "searching restaurants",
		"zipcode", req.Zipcode, "radius", req.Radius)

	restaurants, err := h.searcher.Search(r.Context(), req.Zipcode, req.Radius)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to search restaurants", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorBody{
			Error:   "Failed to search restaurants",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, restaurants)
}
