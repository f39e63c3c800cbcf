package response

import (
	"encoding/json"
	"net/http"
)

// Error is the envelope for every non-2xx body. The detail field carries a
// stack trace on unexpected faults and is omitted in production.
type Error struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func Err(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Error{Message: message})
}

func ErrWithDetail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Error{Message: message, Detail: detail})
}
