package common

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a human readable message.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("encode json response", "error", err)
	}
}

// WriteData wraps data in the {"data": ...} envelope.
func WriteData(logger *slog.Logger, w http.ResponseWriter, status int, data any) {
	WriteJSON(logger, w, status, DataResponse{Data: data})
}

// WriteMessage writes the {"error": {"message": ...}} envelope.
func WriteMessage(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, ErrorResponse{Error: ErrorBody{Message: message}})
}

// RequestLogger returns the request-scoped logger installed by
// httplog.RequestLogger, or fallback when the middleware is absent.
func RequestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if middleware.GetLogEntry(r) != nil {
		return httplog.LogEntry(r.Context())
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
