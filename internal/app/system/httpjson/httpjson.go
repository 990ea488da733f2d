// Package httpjson holds the JSON response helpers shared by all handlers.
//
// Every error response in the API uses the same envelope:
//
//	{ "message": "..." }
//
// with the HTTP status carrying the error class (401 unauthenticated,
// 403 forbidden, 400 bad request, 404 not found, 502 upstream failure).
package httpjson

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope returned to clients.
type ErrorBody struct {
	Message string `json:"message"`
}

// InsertAck mirrors the driver's insert acknowledgment. InsertedID is the
// new ObjectID hex, or null when nothing was inserted.
type InsertAck struct {
	Acknowledged bool    `json:"acknowledged"`
	InsertedID   *string `json:"insertedId"`
	Message      string  `json:"message,omitempty"`
}

// UpdateAck mirrors the driver's update acknowledgment.
type UpdateAck struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteAck mirrors the driver's delete acknowledgment.
type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Write serializes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with a 200 status.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Error writes the error envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, ErrorBody{Message: message})
}

// Decode reads the request body as JSON into dst. A failure here is always
// the caller's malformed payload, so handlers map it to 400.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
