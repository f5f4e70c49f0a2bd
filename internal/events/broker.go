package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultBufferSize = 64

// Broker implements a generic publish-subscribe broker with type safety
type Broker[T any] struct {
	subs       map[chan Event[T]]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	closeOnce  sync.Once
	bufferSize int
}

// NewBroker creates a new broker with default settings
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: defaultBufferSize,
	}
}

// Subscribe registers a new subscriber and returns its channel along with
// an unsubscribe function. The channel is closed on unsubscribe or shutdown.
func (b *Broker[T]) Subscribe() (<-chan Event[T], func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.bufferSize)

	select {
	case <-b.done:
		close(ch)
		return ch, func() {}
	default:
	}

	b.subs[ch] = struct{}{}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}

	return ch, unsubscribe
}

// Publish publishes an event to all subscribers. Slow subscribers with a
// full buffer are skipped rather than blocking the publisher.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	select {
	case <-b.done:
		return // Broker is shut down
	default:
	}

	event := Event[T]{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Shutdown stops the broker and closes all subscriber channels
func (b *Broker[T]) Shutdown() {
	b.closeOnce.Do(func() {
		close(b.done)

		b.mu.Lock()
		defer b.mu.Unlock()
		for ch := range b.subs {
			delete(b.subs, ch)
			close(ch)
		}
	})
}

// SubscriberCount returns the number of active subscribers
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
