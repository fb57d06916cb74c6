package events

import (
	"fmt"
)

type listener struct {
	id      uint64
	handler func(interface{})
}

// Bus is a synchronous event bus for UI services. Handlers run on the
// publishing goroutine, which is always the Bubble Tea update loop, so the
// bus needs no locking.
type Bus struct {
	listeners map[string][]listener
	nextID    uint64
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for the type of sample and returns a
// disposer that removes it. Calling the disposer twice is harmless.
func (b *Bus) Subscribe(sample interface{}, handler func(interface{})) func() {
	eventType := getEventType(sample)
	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	return func() {
		ls := b.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all listeners of its type
func (b *Bus) Publish(event interface{}) {
	handlers := b.listeners[getEventType(event)]
	if len(handlers) == 0 {
		return
	}
	// a handler may unsubscribe while we iterate
	snapshot := make([]listener, len(handlers))
	copy(snapshot, handlers)
	for _, l := range snapshot {
		l.handler(event)
	}
}

// getEventType extracts the type name from an event
func getEventType(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
