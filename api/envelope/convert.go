// Package envelope - Error to HTTP status conversion
package envelope

import (
	"net/http"

	"translation-quote/internal/errors"
)

// StatusFor returns the HTTP status for an error type
func StatusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidArgument:
		return http.StatusBadRequest
	case errors.TypeRegionNotFound, errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypeIneligible:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts any error to a status and error body. Foreign errors
// are reported as INTERNAL.
func FromError(err error) (int, ErrorBody) {
	e, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorBody{
			Code:    string(errors.TypeInternal),
			Message: "internal error",
		}
	}

	status := StatusFor(e.Type)
	body := ErrorBody{Code: string(e.Type), Message: e.Message}
	if status >= http.StatusInternalServerError {
		body.Message = "internal error"
		return status, body
	}
	if e.Cause != nil && e.Type == errors.TypeInvalidArgument {
		body.Message += ": " + e.Cause.Error()
	}
	if len(e.Context) > 0 {
		body.Details = make(map[string]any, len(e.Context))
		for k, v := range e.Context {
			body.Details[k] = v
		}
	}
	return status, body
}
