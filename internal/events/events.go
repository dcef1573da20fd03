// Package events is the change-notification mechanism: after a successful
// mutation the core publishes an event onto a bounded in-process queue per
// subscriber. Subscribers (UI layer, tests, the kafka relay) drain their own
// channel on whatever goroutine suits them; the core makes no threading
// guarantee beyond "the event is published after the mutation is committed".
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"deliverytrack/internal/metrics"
)

type Topic string

const (
	// TopicCouriers signals that the courier list changed.
	TopicCouriers Topic = "couriers"
	// TopicCourier signals that a single courier changed; Event.ID says which.
	TopicCourier Topic = "courier"
	// TopicOrders signals that the order list changed.
	TopicOrders Topic = "orders"
	// TopicOrder signals that a single order changed; Event.ID says which.
	TopicOrder Topic = "order"
	// TopicClock signals that the application clock moved.
	TopicClock Topic = "clock"
	// TopicConfig signals that the business configuration changed.
	TopicConfig Topic = "config"
)

// Event is one change notification.
type Event struct {
	Topic Topic     `json:"topic"`
	ID    int       `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

// Subscription is one subscriber's bounded queue. Read from C; call
// Bus.Unsubscribe with ID when done.
type Subscription struct {
	ID uuid.UUID
	C  <-chan Event

	topics map[Topic]bool
	ch     chan Event
}

func (s *Subscription) wants(t Topic) bool {
	return len(s.topics) == 0 || s.topics[t]
}

// Bus fans events out to subscribers. Publish never blocks: when a
// subscriber's queue is full the event is dropped for that subscriber.
type Bus struct {
	mu        sync.Mutex
	queueSize int
	subs      map[uuid.UUID]*Subscription
}

func NewBus(queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Bus{
		queueSize: queueSize,
		subs:      map[uuid.UUID]*Subscription{},
	}
}

// Subscribe registers interest in the given topics; no topics means all of
// them.
func (b *Bus) Subscribe(topics ...Topic) *Subscription {
	ch := make(chan Event, b.queueSize)
	sub := &Subscription{
		ID:     uuid.New(),
		C:      ch,
		ch:     ch,
		topics: map[Topic]bool{},
	}
	for _, t := range topics {
		sub.topics[t] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[sub.ID] = sub
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Unknown ids
// are ignored.
func (b *Bus) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Publish delivers the event to every interested subscriber without
// blocking the caller.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !sub.wants(e.Topic) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			metrics.EventsDroppedTotal.Inc()
		}
	}
}
