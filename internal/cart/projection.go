// Package cart holds the basket consistency core: a per-session
// projection of the signed-in user's basket, kept eventually consistent
// with the catalog store through the change-notification feed, and the
// mutation façade that writes through to the store.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

// Projection mirrors one user's basket, joined with product data. It
// has no write authority: all mutations go through the Facade and come
// back via the feed. A nil user id means no one is signed in and the
// projection stays empty.
type Projection struct {
	store  store.BasketStore
	feed   notify.Subscriber
	log    *logrus.Logger
	userID uuid.UUID

	mu      sync.RWMutex
	lines   []domain.BasketLine
	updates chan struct{}
}

func NewProjection(st store.BasketStore, feed notify.Subscriber, log *logrus.Logger, userID uuid.UUID) *Projection {
	return &Projection{
		store:   st,
		feed:    feed,
		log:     log,
		userID:  userID,
		updates: make(chan struct{}, 1),
	}
}

// Refresh rebuilds the snapshot from the catalog store. On a read
// failure the previous snapshot is kept and the error returned; no
// retry is scheduled.
func (p *Projection) Refresh(ctx context.Context) error {
	if p.userID == uuid.Nil {
		p.swap(nil)
		return nil
	}

	lines, err := p.store.ListBasketLines(ctx, p.userID)
	if err != nil {
		return fmt.Errorf("refresh cart: %w", err)
	}

	p.swap(lines)
	return nil
}

func (p *Projection) swap(lines []domain.BasketLine) {
	p.mu.Lock()
	p.lines = lines
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Run subscribes to the basket change feed, refreshes once, then
// performs a full refresh on every event regardless of which row
// changed. The full refetch trades efficiency for correctness on
// purpose. Subscribing before the initial refresh means a write landing
// during the refresh still triggers a follow-up. Run returns nil when
// ctx is cancelled; the subscription is always closed on the way out.
func (p *Projection) Run(ctx context.Context) error {
	sub, err := p.feed.Subscribe(ctx, store.TableBasket)
	if err != nil {
		return fmt.Errorf("subscribe basket feed: %w", err)
	}

	if err := p.Refresh(ctx); err != nil {
		p.log.WithError(err).Warn("initial cart refresh failed")
	}
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			p.log.WithError(cerr).Warn("closing basket subscription")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := p.Refresh(ctx); err != nil {
				p.log.WithError(err).Warn("cart refresh failed")
			}
		}
	}
}

// Lines returns a copy of the current snapshot.
func (p *Projection) Lines() []domain.BasketLine {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.BasketLine, len(p.lines))
	copy(out, p.lines)
	return out
}

func (p *Projection) Total() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var total float64
	for _, l := range p.lines {
		total += l.Subtotal()
	}
	return total
}

// Updates signals after each snapshot swap. The channel has capacity
// one; a slow consumer sees coalesced updates, never a stale hang.
func (p *Projection) Updates() <-chan struct{} {
	return p.updates
}
