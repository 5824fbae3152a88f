package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/usecase"
)

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Error writes the flat error payload: {"error": "<message>"}.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}

// usecaseError maps the usecase error taxonomy onto HTTP statuses. Unknown
// errors become a 500 without leaking internals.
func usecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, usecase.ErrBookUnavailable):
		Error(w, http.StatusConflict, "Book is not available for borrowing")
	case errors.Is(err, usecase.ErrAlreadyReturned):
		Error(w, http.StatusConflict, "Book has already been returned")
	case errors.Is(err, usecase.ErrAlreadyExists):
		Error(w, http.StatusConflict, "already exists")
	case errors.Is(err, usecase.ErrInvalidRole):
		Error(w, http.StatusBadRequest, "invalid role")
	case errors.Is(err, usecase.ErrUnavailable):
		Error(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
	default:
		Error(w, http.StatusInternalServerError, "server error")
	}
}
