package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_FanOut(t *testing.T) {
	broker := NewBroker()
	ctx := context.Background()

	subA, err := broker.Subscribe(ctx, "basket")
	require.NoError(t, err)
	subB, err := broker.Subscribe(ctx, "basket")
	require.NoError(t, err)
	other, err := broker.Subscribe(ctx, "products")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, Event{Table: "basket", Op: OpInsert}))

	for _, sub := range []Subscription{subA, subB} {
		select {
		case ev := <-sub.Events():
			assert.Equal(t, OpInsert, ev.Op)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case ev := <-other.Events():
		t.Fatalf("unexpected event on products subscription: %+v", ev)
	default:
	}
}

func TestBroker_CloseStopsDelivery(t *testing.T) {
	broker := NewBroker()
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, "basket")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	require.NoError(t, broker.Publish(ctx, Event{Table: "basket", Op: OpDelete}))

	_, ok := <-sub.Events()
	assert.False(t, ok, "events channel must be closed")
}

func TestBroker_SlowSubscriberDropsNotBlocks(t *testing.T) {
	broker := NewBroker()
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, "basket")
	require.NoError(t, err)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriptionBuffer*2; i++ {
			_ = broker.Publish(ctx, Event{Table: "basket", Op: OpUpdate})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestRedisFeed_PublishSubscribe(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	feed := NewRedisFeed(client, log)
	ctx := context.Background()

	sub, err := feed.Subscribe(ctx, "basket")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, feed.Publish(ctx, Event{Table: "basket", Op: OpUpdate, ID: "42"}))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, "basket", ev.Table)
		assert.Equal(t, OpUpdate, ev.Op)
		assert.Equal(t, "42", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered over redis")
	}
}

func TestRedisFeed_CloseEndsStream(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	feed := NewRedisFeed(client, log)

	sub, err := feed.Subscribe(context.Background(), "basket")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel must be closed")
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}
