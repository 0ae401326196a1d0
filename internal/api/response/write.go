package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body with the given status.
// A nil data writes headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent answers 204 for operations with nothing to return
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
