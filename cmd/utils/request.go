package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrMalformedBody marks a body that failed to decode, as opposed to one
// that decoded but is missing required fields.
var ErrMalformedBody = errors.New("malformed request body")

// DecodeJSON decodes the request body into dst and checks its validator
// tags. Handlers map the two failure kinds to their own 400 messages.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrMalformedBody
	}
	return validate.Struct(dst)
}
