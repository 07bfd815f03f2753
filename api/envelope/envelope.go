// Package envelope - Response envelopes shared by every API route.
// Successful responses are the DTO itself; failures are always
// {"error": {...}, "request_id": "..."} so clients parse one error shape.
package envelope

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
)

// ErrorBody is the canonical error payload
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorEnvelope wraps an ErrorBody with the request id for support lookups
type ErrorEnvelope struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("writing response failed", zap.Error(err))
	}
}

// WriteError maps err to its status and writes the error envelope.
// Internal errors never leak their cause to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := FromError(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", zap.Error(err))
	}
	WriteJSON(w, status, ErrorEnvelope{Error: body, RequestID: reqID})
}

// WriteBadJSON reports a body that could not be decoded
func WriteBadJSON(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, errors.Wrap(errors.TypeInvalidArgument, "invalid JSON body", err))
}
