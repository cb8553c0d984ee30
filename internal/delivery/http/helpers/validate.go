package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"participationletters/internal/domain"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns nil when valid; a *domain.ValidationError is reported with its field list.
type Validator interface {
	Validate() error
}

// DecodeAndValidate decodes the request body into dest and, if dest implements
// Validator, runs Validate(). An empty body decodes to the zero value so that
// validation reports every missing field. On failure it writes a 400 JSON error
// and returns false; callers should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	v, ok := dest.(Validator)
	if !ok {
		return true
	}
	if err := v.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr)
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
