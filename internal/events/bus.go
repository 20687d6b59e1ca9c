// Package events fans store mutation events out to live viewer connections.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinefront/internal/logger"
)

const (
	TypeCreated         = "created"
	TypeUpdated         = "updated"
	TypeDeleted         = "deleted"
	TypeContactUpdated  = "contactUpdated"
	TypeSettingsUpdated = "settingsUpdated"
	TypeHeartbeat       = "heartbeat"
)

// Event is the unit of delivery. For entity mutations Data is an
// EntityChange; for heartbeats it is a Heartbeat.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type EntityChange struct {
	Entity string `json:"entity"`
	Record any    `json:"record"`
}

type Heartbeat struct {
	Timestamp time.Time `json:"timestamp"`
}

// Handler consumes one event. A non-nil error closes the subscription.
type Handler func(evt Event) error

// missLimit is how many consecutive undeliverable heartbeats a subscriber
// survives before it is treated as dead.
const missLimit = 4

type subscriber struct {
	id      string
	ch      chan Event
	handler Handler
	missed  int // touched only by the heartbeat goroutine
}

// Bus delivers every published event to every active subscriber. Each
// subscriber gets its own buffered channel drained by its own goroutine, so
// one slow connection never blocks publishers or other subscribers, and each
// subscriber sees events in publish order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber

	bufferSize int
	log        *logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func NewBus(heartbeatInterval time.Duration, bufferSize int, log *logger.Logger) *Bus {
	b := &Bus{
		subscribers: make(map[string]*subscriber),
		bufferSize:  bufferSize,
		log:         log,
		done:        make(chan struct{}),
	}
	go b.heartbeatLoop(heartbeatInterval)
	return b
}

// Subscribe registers a handler and returns its unsubscribe function.
// Unsubscribing more than once is harmless.
func (b *Bus) Subscribe(handler Handler) func() {
	sub := &subscriber{
		id:      uuid.NewString(),
		ch:      make(chan Event, b.bufferSize),
		handler: handler,
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	go b.drain(sub)
	b.log.LogBus("SUBSCRIBE", fmt.Sprintf("viewer %s connected", sub.id))

	return func() { b.remove(sub.id, "unsubscribed") }
}

// Publish hands the event to every active subscriber without blocking. A
// subscriber whose buffer is full has stopped consuming and is evicted.
func (b *Bus) Publish(evt Event) {
	var dead []string

	b.mu.RLock()
	for id, sub := range b.subscribers {
		select {
		case sub.ch <- evt:
		default:
			dead = append(dead, id)
		}
	}
	b.mu.RUnlock()

	for _, id := range dead {
		b.remove(id, "event delivery failed")
	}
}

// SubscriberCount reports how many viewers are currently connected.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close evicts every subscriber and stops the heartbeat.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)

		b.mu.Lock()
		for id, sub := range b.subscribers {
			delete(b.subscribers, id)
			close(sub.ch)
		}
		b.mu.Unlock()
	})
}

func (b *Bus) drain(sub *subscriber) {
	for evt := range sub.ch {
		if err := sub.handler(evt); err != nil {
			b.log.Warn("BUS", fmt.Sprintf("viewer %s handler failed: %v", sub.id, err))
			b.remove(sub.id, "handler error")
			return
		}
	}
}

// remove deletes and closes a subscriber. Closing under the write lock is
// safe because Publish only sends while holding the read lock.
func (b *Bus) remove(id, reason string) {
	b.mu.Lock()
	sub, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
		close(sub.ch)
	}
	b.mu.Unlock()

	if ok {
		b.log.LogBus("CLOSE", fmt.Sprintf("viewer %s: %s", id, reason))
	}
}

func (b *Bus) heartbeatLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.pulse()
		}
	}
}

// pulse sends a liveness event to each subscriber. Idle but healthy viewers
// keep their buffers empty, so a pulse that cannot be buffered means the
// viewer stopped consuming; after missLimit consecutive misses it is closed.
func (b *Bus) pulse() {
	evt := Event{Type: TypeHeartbeat, Data: Heartbeat{Timestamp: time.Now().UTC()}}
	var dead []string

	b.mu.RLock()
	for id, sub := range b.subscribers {
		select {
		case sub.ch <- evt:
			sub.missed = 0
		default:
			sub.missed++
			if sub.missed >= missLimit {
				dead = append(dead, id)
			}
		}
	}
	b.mu.RUnlock()

	for _, id := range dead {
		b.remove(id, "missed heartbeats")
	}
}
