package utils

import (
	"encoding/json"
	"net/http"

	"grounds-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error normalizes an error through the apperrors taxonomy and writes it
// as a JSON body with the category tag
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperrors.StatusOf(err), map[string]string{
		"error":    apperrors.MessageOf(err),
		"category": string(apperrors.CategoryOf(err)),
	})
}

// BadRequest writes a 400 with a plain message
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{
		"error":    message,
		"category": "validation",
	})
}
