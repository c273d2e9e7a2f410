package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

var (
	ErrNotSignedIn  = errors.New("no user signed in")
	ErrInvalidDelta = errors.New("delta must be positive")
)

// Facade translates cart intents into catalog store writes. Writes are
// fire-and-forget with respect to the projection: success never mutates
// a snapshot directly, the projection converges via the feed within one
// notification cycle.
type Facade struct {
	store store.BasketStore
	log   *logrus.Logger
}

func NewFacade(st store.BasketStore, log *logrus.Logger) *Facade {
	return &Facade{store: st, log: log}
}

// AddOrIncrement adds delta to the user's line for the product,
// creating the line when absent. The increment is atomic on the server
// side, so overlapping adds from the same user cannot lose an update.
func (f *Facade) AddOrIncrement(ctx context.Context, userID uuid.UUID, productID int64, delta int) error {
	if userID == uuid.Nil {
		return ErrNotSignedIn
	}
	if delta <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}

	if err := f.store.UpsertBasketIncrement(ctx, userID, productID, delta); err != nil {
		f.log.WithError(err).WithField("product_id", productID).Error("add to basket failed")
		return err
	}
	return nil
}

// SetQuantity sets the absolute quantity of an entry. A quantity of
// zero or less means the entry must not exist and delegates to Remove.
func (f *Facade) SetQuantity(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return ErrNotSignedIn
	}
	if quantity <= 0 {
		return f.Remove(ctx, userID, entryID)
	}

	if err := f.store.SetBasketQuantity(ctx, entryID, userID, quantity); err != nil {
		f.log.WithError(err).WithField("entry_id", entryID).Error("set basket quantity failed")
		return err
	}
	return nil
}

func (f *Facade) Remove(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotSignedIn
	}

	if err := f.store.DeleteBasketEntry(ctx, entryID, userID); err != nil {
		f.log.WithError(err).WithField("entry_id", entryID).Error("remove basket entry failed")
		return err
	}
	return nil
}
