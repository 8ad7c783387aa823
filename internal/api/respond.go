package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

// RespondWithJSON writes payload as the response body with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes an ErrorResponse carrying the request's trace id.
func WriteJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, status, ErrorResponse{
		Error:   message,
		TraceID: TraceIDFromContext(r.Context()),
	})
}
