package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/admin"
	"github.com/QuliyevMSH/gubre-evi-main/internal/auth"
	"github.com/QuliyevMSH/gubre-evi-main/internal/cart"
	"github.com/QuliyevMSH/gubre-evi-main/internal/profile"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(log *logrus.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(log *logrus.Logger, w http.ResponseWriter, status int, code, message string) {
	respondJSON(log, w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps service errors onto HTTP responses. Every
// error is logged here and converted into a user-visible message, none
// crashes the surface.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Warn("operation failed")

	var (
		readErr  *store.ReadError
		writeErr *store.WriteError
	)
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrEntryNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrUserNotFound):
		respondError(s.log, w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrEmailTaken):
		respondError(s.log, w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, cart.ErrNotSignedIn):
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, admin.ErrInvalidPrice),
		errors.Is(err, admin.ErrEmptyName),
		errors.Is(err, profile.ErrNoFile),
		errors.Is(err, cart.ErrInvalidDelta):
		respondError(s.log, w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.As(err, &readErr):
		respondError(s.log, w, http.StatusBadGateway, "catalog_read_failed", "could not load data, try again")
	case errors.As(err, &writeErr):
		respondError(s.log, w, http.StatusBadGateway, "catalog_write_failed", "could not save data, try again")
	default:
		respondError(s.log, w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
