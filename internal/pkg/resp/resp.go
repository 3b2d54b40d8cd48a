/*
Package resp provides helper functions for sending standardized HTTP JSON responses.

Successful responses carry the payload directly; failures carry a structured
error body with the numeric status and a list of human-readable messages.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
)

// ErrorResponse is the error body returned to HTTP clients.
type ErrorResponse struct {
	// Status repeats the HTTP status code in the body.
	Status int `json:"status"`

	// Message is a short description of the failure class.
	Message string `json:"message"`

	// Errors lists the individual human-readable problems.
	Errors []string `json:"errors"`
}

// RespondJSON sets the Content-Type and writes the JSON payload with the
// given HTTP status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends the payload with HTTP 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, data)
}

// RespondError translates an application error into the structured error
// body, deriving the HTTP status from the error kind. Internal causes are
// logged here and never written to the client.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)

	if kind == errs.KindInternal {
		logx.Error(err, "Request failed with internal error", "path", r.URL.Path)
	}

	status := kind.HTTPStatus()

	res := ErrorResponse{
		Status:  status,
		Message: kind.String() + " error",
		Errors:  []string{errs.MessageOf(err)},
	}
	RespondJSON(w, r, status, res)
}
