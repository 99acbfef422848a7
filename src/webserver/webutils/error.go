// Package webutils contains helpers shared by the HTTP handlers.
package webutils

import (
	"encoding/json"
	"net/http"
)

// JSONError writes a JSON object with an error message and sets the HTTP status code.
func JSONError(w http.ResponseWriter, message string, statusCode int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	resp := jsonErrorMessage{
		Error: message,
	}
	return json.NewEncoder(w).Encode(&resp)
}

// JSON writes val encoded as JSON with status code 200.
func JSON(w http.ResponseWriter, val any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(val)
}

type jsonErrorMessage struct {
	Error string `json:"error"`
}
