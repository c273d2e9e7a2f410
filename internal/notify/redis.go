package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisFeed fans change events out over Redis pub/sub, one channel per
// table, so independently deployed storefront instances converge on the
// same basket content.
type RedisFeed struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisFeed(client *redis.Client, log *logrus.Logger) *RedisFeed {
	return &RedisFeed{client: client, log: log}
}

func channelFor(table string) string {
	return fmt.Sprintf("changes:%s", table)
}

func (f *RedisFeed) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := f.client.Publish(ctx, channelFor(ev.Table), payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context, table string) (Subscription, error) {
	ps := f.client.Subscribe(ctx, channelFor(table))

	// Wait for the subscription handshake so events published after
	// Subscribe returns are never missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s feed: %w", table, err)
	}

	events := make(chan Event, subscriptionBuffer)
	go func() {
		defer close(events)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				f.log.WithError(err).WithField("table", table).Warn("malformed change event")
				continue
			}
			events <- ev
		}
	}()

	return &redisSub{ps: ps, events: events}, nil
}

type redisSub struct {
	ps     *redis.PubSub
	events chan Event
}

func (s *redisSub) Events() <-chan Event { return s.events }

// Close unsubscribes; closing the PubSub also closes the channel the
// forwarding goroutine ranges over. Double close is tolerated.
func (s *redisSub) Close() error {
	if err := s.ps.Close(); err != nil && err != redis.ErrClosed {
		return fmt.Errorf("close subscription: %w", err)
	}
	return nil
}
