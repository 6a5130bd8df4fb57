package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteValidationError flattens validator errors into a field -> rule map.
func WriteValidationError(w http.ResponseWriter, errs validator.ValidationErrors) error {
	meta := make(map[string]string, len(errs))
	for _, fieldError := range errs {
		meta[fieldError.Field()] = fieldError.Tag()
	}
	return WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "request validation failed", meta)
}

// DecodeJSON decodes the request body into dto and writes a 400 response on
// malformed input. It reports whether decoding succeeded.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = WriteError(w, http.StatusBadRequest, "MALFORMED_BODY", "failed to decode request body", nil)
		return false
	}
	return true
}
