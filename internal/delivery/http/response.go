package http

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// SuccessResponse is the envelope every successful bridge call returns.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// FailureResponse is the envelope for any failed call. Details carries
// normalized exchange guidance; Error carries the raw vendor payload or the
// local error text, never both.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// FieldError itemizes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is the 400 envelope for malformed input.
type ValidationResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func WriteValidationErrors(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
