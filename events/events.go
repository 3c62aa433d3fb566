// Package events provides an in-memory publish/subscribe broker backing the
// server's event stream endpoint. Subscribers receive events over buffered
// channels; a subscriber that stops draining its channel is dropped rather
// than allowed to block publishers.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a named payload delivered to every active subscriber.
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// subscriberBuffer is the per-client channel capacity. A client this far
// behind is considered dead and dropped on the next publish.
const subscriberBuffer = 16

// Broker fans events out to subscribers. The zero value is not usable; use
// NewBroker.
type Broker struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
	closed      bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function. The channel is closed when cancel is called, when the
// broker shuts down, or when the subscriber falls too far behind.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := uuid.NewString()
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Subscribers whose buffers
// are full are dropped; Publish never blocks.
func (b *Broker) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			delete(b.subscribers, id)
			close(ch)
		}
	}
}

// Len returns the number of active subscribers.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close shuts the broker down, closing every subscriber channel. Further
// Subscribe calls return an already closed channel; Publish becomes a no-op.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
