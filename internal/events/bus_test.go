package events_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinefront/internal/events"
	"cinefront/internal/logger"
)

// quiet heartbeat so fan-out tests only see published events
const noHeartbeat = time.Hour

type collector struct {
	mu   sync.Mutex
	got  []events.Event
	fail error
}

func (c *collector) handle(evt events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.got = append(c.got, evt)
	return nil
}

func (c *collector) events() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.Event(nil), c.got...)
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	for i, e := range c.got {
		out[i] = e.Type
	}
	return out
}

func TestPublishFansOutToAllSubscribersInOrder(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 16, logger.Discard())
	defer bus.Close()

	subs := make([]*collector, 3)
	for i := range subs {
		subs[i] = &collector{}
		bus.Subscribe(subs[i].handle)
	}

	bus.Publish(events.Event{Type: events.TypeCreated})
	bus.Publish(events.Event{Type: events.TypeUpdated})
	bus.Publish(events.Event{Type: events.TypeDeleted})

	want := []string{events.TypeCreated, events.TypeUpdated, events.TypeDeleted}
	for i, sub := range subs {
		require.Eventually(t, func() bool { return len(sub.events()) == 3 },
			time.Second, 5*time.Millisecond, "subscriber %d", i)
		assert.Equal(t, want, sub.types(), "subscriber %d sees publish order", i)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 16, logger.Discard())
	defer bus.Close()

	sub := &collector{}
	unsubscribe := bus.Subscribe(sub.handle)
	require.Equal(t, 1, bus.SubscriberCount())

	unsubscribe()
	unsubscribe() // double unsubscribe is harmless
	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(events.Event{Type: events.TypeCreated})
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, sub.events())
}

// A subscriber that stops consuming is evicted; others keep receiving.
func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 1, logger.Discard())
	defer bus.Close()

	gate := make(chan struct{})
	blocked := func(evt events.Event) error {
		<-gate
		return nil
	}
	bus.Subscribe(blocked)

	healthy := &collector{}
	bus.Subscribe(healthy.handle)

	// First event occupies the blocked handler, second fills its buffer,
	// third cannot be delivered and evicts it.
	for i := 0; i < 3; i++ {
		bus.Publish(events.Event{Type: events.TypeCreated})
	}

	require.Eventually(t, func() bool { return len(healthy.events()) == 3 },
		time.Second, 5*time.Millisecond, "healthy subscriber unaffected")
	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 },
		time.Second, 5*time.Millisecond, "blocked subscriber evicted")
	close(gate)
}

func TestHandlerErrorClosesSubscription(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 16, logger.Discard())
	defer bus.Close()

	sub := &collector{fail: assert.AnError}
	bus.Subscribe(sub.handle)

	bus.Publish(events.Event{Type: events.TypeCreated})

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestHeartbeatsReachIdleSubscribers(t *testing.T) {
	bus := events.NewBus(20*time.Millisecond, 16, logger.Discard())
	defer bus.Close()

	sub := &collector{}
	bus.Subscribe(sub.handle)

	require.Eventually(t, func() bool { return len(sub.events()) >= 2 },
		time.Second, 5*time.Millisecond)

	for _, evt := range sub.events() {
		require.Equal(t, events.TypeHeartbeat, evt.Type)
		hb, ok := evt.Data.(events.Heartbeat)
		require.True(t, ok)
		assert.False(t, hb.Timestamp.IsZero())
	}
}

func TestMissedHeartbeatsEvictSubscriber(t *testing.T) {
	bus := events.NewBus(10*time.Millisecond, 1, logger.Discard())
	defer bus.Close()

	gate := make(chan struct{})
	blocked := func(evt events.Event) error {
		<-gate
		return nil
	}
	bus.Subscribe(blocked)

	// Occupy the handler, then fill the one-slot buffer so every following
	// pulse misses.
	bus.Publish(events.Event{Type: events.TypeCreated})
	time.Sleep(20 * time.Millisecond)
	bus.Publish(events.Event{Type: events.TypeUpdated})

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond, "evicted after four missed pulses")
	close(gate)
}

func TestCloseEvictsEveryone(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 16, logger.Discard())

	for i := 0; i < 3; i++ {
		bus.Subscribe((&collector{}).handle)
	}
	require.Equal(t, 3, bus.SubscriberCount())

	bus.Close()
	bus.Close() // idempotent
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestSubscribeDuringPublish(t *testing.T) {
	bus := events.NewBus(noHeartbeat, 64, logger.Discard())
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			bus.Publish(events.Event{Type: events.TypeCreated})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			unsub := bus.Subscribe((&collector{}).handle)
			unsub()
		}
	}()
	wg.Wait()
	assert.Equal(t, 0, bus.SubscriberCount())
}
