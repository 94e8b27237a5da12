package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"stayhaven/internal/availability"
	"stayhaven/internal/database"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps service and storage errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var rejection *availability.Rejection
	if errors.As(err, &rejection) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  rejection.Error(),
			"reason": string(rejection.Reason),
		})
		return
	}

	switch {
	case errors.Is(err, database.ErrRoomNotFound),
		errors.Is(err, database.ErrAccommodationNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrBlockNotFound),
		errors.Is(err, database.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrConflict),
		errors.Is(err, database.ErrBlocked),
		errors.Is(err, database.ErrInvalidTransition),
		errors.Is(err, database.ErrConcurrentModification):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrCapacityExceeded),
		errors.Is(err, database.ErrPastDate),
		errors.Is(err, database.ErrDateTooFar):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
