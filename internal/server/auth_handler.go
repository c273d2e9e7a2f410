package server

import (
	"encoding/json"
	"net/http"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
)

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponseDTO struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, token, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusCreated, authResponseDTO{Token: token, User: user})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, authResponseDTO{Token: token, User: user})
}
