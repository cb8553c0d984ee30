package helpers

import (
	"encoding/json"
	"net/http"

	"participationletters/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
	// MissingFields is set on validation failures and lists every absent field.
	MissingFields []string `json:"missingFields,omitempty"`
}

// MessageResponse is a plain success acknowledgment.
// swagger:model MessageResponse
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an ErrorResponse with the given status and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteValidationError writes a 400 naming every missing field.
func WriteValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:         domain.MissingFieldsMessage,
		MissingFields: verr.Fields,
	})
}
