package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return &providers.ValidationError{Field: "body", Reason: "is required"}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &providers.ValidationError{Field: "body", Reason: "is required"}
		}
		return &providers.ValidationError{Field: "body", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	return nil
}

// StatusForError maps a domain error to an HTTP status code.
func StatusForError(err error) int {
	var (
		verr *providers.ValidationError
		uerr *providers.UnsupportedFlowError
		nerr *providers.NotFoundError
		terr *providers.TransportError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &uerr):
		return http.StatusConflict
	case errors.As(err, &nerr):
		return http.StatusNotFound
	case errors.As(err, &terr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// WriteServiceError writes err with the status StatusForError picks. Server-side
// failures are logged; client errors are not.
func WriteServiceError(w http.ResponseWriter, logger *common.Logger, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error().Int("status", status).Str("error", err.Error()).Msg("request failed")
	}
	WriteError(w, status, err.Error())
}
