package notify

import (
	"context"
	"sync"
)

const subscriptionBuffer = 16

// Broker is an in-process Feed for single-node deployments and tests.
// Every subscription receives every event for its table; a subscriber
// that falls more than subscriptionBuffer events behind loses events,
// which is safe because consumers refetch on any event.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*brokerSub]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*brokerSub]struct{})}
}

func (b *Broker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[ev.Table] {
		select {
		case sub.events <- ev:
		default:
		}
	}
	return nil
}

func (b *Broker) Subscribe(_ context.Context, table string) (Subscription, error) {
	sub := &brokerSub{
		broker: b,
		table:  table,
		events: make(chan Event, subscriptionBuffer),
	}
	b.mu.Lock()
	if b.subs[table] == nil {
		b.subs[table] = make(map[*brokerSub]struct{})
	}
	b.subs[table][sub] = struct{}{}
	b.mu.Unlock()
	return sub, nil
}

type brokerSub struct {
	broker *Broker
	table  string
	events chan Event
	once   sync.Once
}

func (s *brokerSub) Events() <-chan Event { return s.events }

func (s *brokerSub) Close() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs[s.table], s)
		s.broker.mu.Unlock()
		close(s.events)
	})
	return nil
}
