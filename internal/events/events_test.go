package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscribeReceivesMatchingTopics(t *testing.T) {
	bus := NewBus(4)
	sub := bus.Subscribe(TopicOrders, TopicOrder)
	defer bus.Unsubscribe(sub.ID)

	bus.Publish(Event{Topic: TopicOrders})
	bus.Publish(Event{Topic: TopicClock})
	bus.Publish(Event{Topic: TopicOrder, ID: 1000})

	first := <-sub.C
	assert.Equal(t, TopicOrders, first.Topic)
	second := <-sub.C
	assert.Equal(t, TopicOrder, second.Topic)
	assert.Equal(t, 1000, second.ID)

	select {
	case e := <-sub.C:
		t.Fatalf("unexpected event %v", e)
	default:
	}
}

func TestSubscribeWithoutTopicsReceivesEverything(t *testing.T) {
	bus := NewBus(4)
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub.ID)

	bus.Publish(Event{Topic: TopicClock})
	bus.Publish(Event{Topic: TopicConfig})

	assert.Equal(t, TopicClock, (<-sub.C).Topic)
	assert.Equal(t, TopicConfig, (<-sub.C).Topic)
}

func TestPublishNeverBlocksOnFullQueue(t *testing.T) {
	bus := NewBus(1)
	sub := bus.Subscribe(TopicOrders)
	defer bus.Unsubscribe(sub.ID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(Event{Topic: TopicOrders})
		bus.Publish(Event{Topic: TopicOrders}) // queue full, dropped
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber queue")
	}

	<-sub.C
	select {
	case <-sub.C:
		t.Fatal("dropped event was delivered")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(4)
	sub := bus.Subscribe()
	bus.Unsubscribe(sub.ID)

	_, ok := <-sub.C
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{Topic: TopicClock})
}

type recordingProducer struct {
	mu     sync.Mutex
	values [][]byte
}

func (p *recordingProducer) SendMessage(_ context.Context, _, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, value)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.values)
}

func TestRelayForwardsEvents(t *testing.T) {
	bus := NewBus(8)
	producer := &recordingProducer{}

	ctx, cancel := context.WithCancel(context.Background())
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		_ = Relay(ctx, bus, producer, zap.NewNop())
	}()

	// Give the relay a moment to subscribe before publishing.
	require.Eventually(t, func() bool {
		bus.Publish(Event{Topic: TopicOrder, ID: 1000})
		return producer.count() > 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-relayDone

	p := producer
	p.mu.Lock()
	defer p.mu.Unlock()
	var e Event
	require.NoError(t, json.Unmarshal(p.values[0], &e))
	assert.Equal(t, TopicOrder, e.Topic)
	assert.Equal(t, 1000, e.ID)
}
