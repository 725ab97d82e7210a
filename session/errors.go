package session

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors for session store operations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrVersionConflict  = errors.New("session version conflict")
	ErrNotFound         = errors.New("session not found")
	ErrSessionExists    = errors.New("session already exists")
)

// ActionError is a session action failure carrying the HTTP status the
// transport layer should report (400/404/409/410).
type ActionError struct {
	Status  int
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ActionError) Unwrap() error { return e.Err }

// StatusOf maps an action error to its HTTP status. Anything outside
// the taxonomy is a store failure and reports 500.
func StatusOf(err error) int {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the caller-facing message for an action error, or
// a generic message for store failures.
func MessageOf(err error) string {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}

func badRequest(message string) *ActionError {
	return &ActionError{Status: http.StatusBadRequest, Message: message}
}

func notFoundError() *ActionError {
	return &ActionError{Status: http.StatusNotFound, Message: "Session not found", Err: ErrNotFound}
}

func goneError() *ActionError {
	return &ActionError{Status: http.StatusGone, Message: "Session has expired"}
}

func conflictError() *ActionError {
	return &ActionError{Status: http.StatusConflict, Message: "Session already exists", Err: ErrSessionExists}
}
