package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dindr "github.com/dindr/services"
	"github.com/dindr/services/session"
)

// SessionsHandler serves the sessions service API.
type SessionsHandler struct {
	service *session.Service
	logger  *slog.Logger
}

// NewSessionsHandler builds the HTTP handler for the sessions service.
func NewSessionsHandler(service *session.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &SessionsHandler{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", h.handleSessionAction)
	mux.HandleFunc("GET /health", handleHealth)
	return withRequestLogging(logger, mux)
}

func (h *SessionsHandler) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	var req dindr.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Restaurant != nil && req.Restaurant.ID == "" {
		writeError(w, http.StatusBadRequest, "Restaurant id is required")
		return
	}

	result, err := h.service.HandleAction(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "session action failed",
			"session_id", req.SessionID, "action", req.Action, "error", err)
		writeError(w, session.StatusOf(err), session.MessageOf(err))
		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: result})
}
