package httputil

import (
	"encoding/json"
	"net/http"
	"time"

	dErrors "insurance/pkg/domain-errors"
	"insurance/pkg/requestcontext"
)

// InternalErrorMessage is returned for every failure that has no client-facing code.
const InternalErrorMessage = "An error occurred while processing your request"

// ErrorResponse is the envelope for coded client errors such as 404.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// InternalErrorResponse is the envelope for unhandled failures. It never
// carries the underlying error text.
type InternalErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into an HTTP error response. Domain errors with a
// client-facing code keep their message; anything else becomes a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	now := requestcontext.Now(r.Context())

	de, ok := dErrors.As(err)
	if !ok || de.Code == dErrors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, InternalErrorResponse{
			Timestamp: now,
			Message:   InternalErrorMessage,
		})
		return
	}

	status := dErrors.ToHTTPStatus(de.Code)
	WriteJSON(w, status, ErrorResponse{
		Timestamp: now,
		Status:    status,
		Error:     http.StatusText(status),
		Message:   de.Message,
	})
}
