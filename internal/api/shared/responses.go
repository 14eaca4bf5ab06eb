package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nabink/lang-portal/internal/pagination"
)

// Envelope is the uniform success wrapper returned by every endpoint.
// Meta carries pagination metadata on list responses and is omitted
// elsewhere.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Meta      *Meta     `json:"meta,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Meta groups response metadata. Only pagination for now.
type Meta struct {
	Pagination pagination.Meta `json:"pagination"`
}

// ErrorEnvelope is the uniform failure wrapper. ErrorCode is a stable
// machine-readable kind; Message is human-readable and never carries raw
// internal error text.
type ErrorEnvelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ErrorCode string    `json:"error_code"`
	TraceID   string    `json:"trace_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData wraps data in a success envelope and writes it.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// RespondWithPage wraps a list payload and its pagination metadata in a
// success envelope and writes it.
func RespondWithPage(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	data any,
	meta pagination.Meta,
) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      &Meta{Pagination: meta},
		Timestamp: time.Now().UTC(),
	})
}

// RespondWithError writes a failure envelope with the given status,
// error code, and sanitized message. It also sets the TraceID from the
// request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"error_code", code,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorEnvelope{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	})
}

// RespondWithErrorAndLog writes a failure envelope and logs the detailed
// underlying error. The raw error goes only to the log, never to the
// client. Server errors log at ERROR level, client errors at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code, userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorEnvelope{
		Success:   false,
		Message:   userMessage,
		ErrorCode: code,
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	})
}
