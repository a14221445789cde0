package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error codes used in the error envelope
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeMissingDevice = "MISSING_DEVICE_ID"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBodyTooLarge  = "BODY_TOO_LARGE"
)

const maxRequestBodyBytes = 1 << 20

// ErrorResponse is the error envelope: {"error": {"code", "message"}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; nothing useful to do on failure.
		_ = json.NewEncoder(w).Encode(data)
	}
}

func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

func WriteBadRequestWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusBadRequest, code, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteBadGateway reports a failed call to an upstream API.
func WriteBadGateway(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, ErrCodeUpstream, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// DecodeJSON reads a single JSON object from the request body into v,
// rejecting unknown fields and bodies over 1 MiB. On failure it writes the
// 400 response itself and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteBadRequestWithCode(w, ErrCodeBodyTooLarge, "Request body too large")
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is empty")
		default:
			WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		}
		return false
	}
	return true
}
