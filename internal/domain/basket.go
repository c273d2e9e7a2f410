package domain

import (
	"time"

	"github.com/google/uuid"
)

// BasketEntry is one (user, product) cart line. An entry with
// quantity <= 0 must never exist; such a state is translated into
// deletion of the entry before it reaches the store.
type BasketEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// BasketLine is a basket entry joined with its product, the shape the
// cart projection serves to callers.
type BasketLine struct {
	Entry   BasketEntry `json:"entry"`
	Product Product     `json:"product"`
}

func (l BasketLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Entry.Quantity)
}
