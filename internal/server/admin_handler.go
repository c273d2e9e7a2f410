package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/QuliyevMSH/gubre-evi-main/internal/admin"
)

func (s *Server) adminAddProduct(w http.ResponseWriter, r *http.Request) {
	var in admin.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p, err := s.admin.AddProduct(r.Context(), in)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusCreated, p)
}

func (s *Server) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(s.log, w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	var in admin.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p, err := s.admin.UpdateProduct(r.Context(), id, in)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, p)
}

func (s *Server) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(s.log, w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	if err := s.admin.DeleteProduct(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, users)
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_user_id", "id must be a UUID")
		return
	}

	if err := s.admin.DeleteUser(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
