package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/QuliyevMSH/gubre-evi-main/internal/cart"
	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
)

// emptyBasketMessage matches the storefront's empty-state copy.
const emptyBasketMessage = "Səbət boşdur"

type cartViewDTO struct {
	Items   []domain.BasketLine `json:"items"`
	Total   string              `json:"total"`
	Message string              `json:"message,omitempty"`
}

func cartView(lines []domain.BasketLine) cartViewDTO {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	view := cartViewDTO{
		Items: lines,
		Total: domain.FormatPrice(total),
	}
	if len(lines) == 0 {
		view.Items = []domain.BasketLine{}
		view.Message = emptyBasketMessage
	}
	return view
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	p := cart.NewProjection(s.basket, s.feed, s.log, id.UserID)
	if err := p.Refresh(r.Context()); err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(s.log, w, http.StatusOK, cartView(p.Lines()))
}

type addItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type setQuantityDTO struct {
	Quantity int `json:"quantity"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req addItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(s.log, w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	if err := s.facade.AddOrIncrement(r.Context(), id.UserID, req.ProductID, req.Quantity); err != nil {
		s.respondServiceError(w, err)
		return
	}

	// The projection converges via the change feed; no cart body here.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entry_id"))
	if err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_entry_id", "entry_id must be a UUID")
		return
	}

	var req setQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.facade.SetQuantity(r.Context(), id.UserID, entryID, req.Quantity); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entry_id"))
	if err != nil {
		respondError(s.log, w, http.StatusBadRequest, "invalid_entry_id", "entry_id must be a UUID")
		return
	}

	if err := s.facade.Remove(r.Context(), id.UserID, entryID); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// watchCart streams the cart projection as server-sent events. Each
// connection owns an independent feed subscription, released when the
// client disconnects.
func (s *Server) watchCart(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFrom(r.Context())
	if !ok {
		respondError(s.log, w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(s.log, w, http.StatusInternalServerError, "streaming_unsupported", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	p := cart.NewProjection(s.basket, s.feed, s.log, id.UserID)

	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-runErr:
			if err != nil {
				s.log.WithError(err).Warn("cart watch terminated")
			}
			return
		case <-p.Updates():
			payload, err := json.Marshal(cartView(p.Lines()))
			if err != nil {
				s.log.WithError(err).Error("marshal cart snapshot")
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
