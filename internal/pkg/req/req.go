/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body decoding with strict field checking so malformed
input is reported as a validation error before any business logic runs.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

// MaxBodyBytes caps the request body size for JSON endpoints.
const MaxBodyBytes int64 = 1 << 20 // 1 MB

// BindJSON binds the JSON request body to the destination struct dst.
// Unknown fields, trailing content, and non-JSON content types are rejected.
func BindJSON(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.Validation("Unsupported request format.")
	}

	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.Validation("Could not parse request body.")
	}

	if decoder.More() {
		return errs.Validation("Request contains unexpected data.")
	}

	return nil
}
