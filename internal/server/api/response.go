// Package api provides HTTP API handlers for palm readings.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/reading"
	"github.com/ayusman/hastarekha/internal/store"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: http.StatusText(status), Message: message})
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, reading.ErrInvalidContext),
		errors.Is(err, capture.ErrUnsupportedType),
		errors.Is(err, capture.ErrDecode),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrConcurrentRequest):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err with request context and writes the mapped status.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusFor(err)
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        r.URL.Path,
		"method":      r.Method,
	})
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}

	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = "internal error"
	}
	writeError(w, code, message)
}
