package httpx

import (
	"encoding/json"
	"net/http"
)

// JSONError writes the flat error payload the API uses everywhere:
// {"error": "<message>"}.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
