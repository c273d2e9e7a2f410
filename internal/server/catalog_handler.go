package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(s.log, w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(s.log, w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	product, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, product)
}
