package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/QuliyevMSH/gubre-evi-main/internal/profile"
)

const maxAvatarSize = 2 << 20 // 2MB

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	p, err := s.profile.Get(r.Context(), id.UserID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, p)
}

type updateProfileDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req updateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p, err := s.profile.Update(r.Context(), id.UserID, req.FirstName, req.LastName)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, p)
}

func (s *Server) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		s.respondServiceError(w, profile.ErrNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "could not read file")
		return
	}

	p, err := s.profile.UploadAvatar(r.Context(), id.UserID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, p)
}
