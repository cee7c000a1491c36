package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wingman_server/services"
)

// writeJSON encodes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError sends a JSON error body so clients always get a named reason
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain rejections onto status codes. Every
// rejection keeps its specific message; anything unrecognized is a generic
// server error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNetIDTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInviteExpired),
		errors.Is(err, services.ErrInviteExhausted):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, services.ErrSelfRedemption),
		errors.Is(err, services.ErrSelfSwipe),
		errors.Is(err, services.ErrOwnerIsTarget),
		errors.Is(err, services.ErrDelegateIsTarget),
		errors.Is(err, services.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
