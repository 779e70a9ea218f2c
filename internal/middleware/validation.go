package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gleaming-gallery/internal/validation"
)

// MaxBodyBytes caps decoded request bodies.
const MaxBodyBytes = 1 << 20

// ErrMalformedBody is returned when the request body is not valid JSON for
// the target type.
var ErrMalformedBody = errors.New("malformed request body")

// DecodeAndValidate decodes a JSON request body into v and validates it.
// Decoding failures wrap ErrMalformedBody; validation failures are returned
// as validator errors.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformedBody)
		}
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return validation.Struct(v)
}

// RespondWithDecodeError writes the 400 matching a DecodeAndValidate error.
func RespondWithDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMalformedBody) {
		RespondWithError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if fields := validation.Fields(err); len(fields) > 0 {
		RespondWithValidationErrors(w, fields)
		return
	}
	RespondWithError(w, http.StatusBadRequest, "invalid request")
}
