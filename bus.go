package livenumber

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// EventInput is published after every committed change.
const EventInput = "input"

// ChangeEvent is the payload of EventInput.
type ChangeEvent struct {
	// Value is the normalized number ("1234.56") or "" for an empty field.
	Value string
	// Formatted is the display string including prefix and separators.
	Formatted string
}

// Handler receives change notifications.
type Handler func(ChangeEvent)

// Subscription identifies a registered handler. The zero value is returned
// for rejected subscriptions and is ignored by Unsubscribe.
type Subscription struct {
	Event string
	ID    uuid.UUID
}

// Valid reports whether the subscription was accepted.
func (s Subscription) Valid() bool {
	return s.ID != uuid.Nil
}

type subscriber struct {
	id      uuid.UUID
	handler Handler
}

// Bus is a publish/subscribe hub restricted to a fixed set of event names.
// It is safe for concurrent use; handlers run on the publishing goroutine.
type Bus struct {
	mu          sync.RWMutex
	allowed     map[string]struct{}
	subscribers map[string][]subscriber
}

// NewBus builds a bus accepting only the given event names.
func NewBus(events ...string) *Bus {
	b := &Bus{
		allowed:     make(map[string]struct{}, len(events)),
		subscribers: make(map[string][]subscriber),
	}
	for _, event := range events {
		if event != "" {
			b.allowed[event] = struct{}{}
		}
	}
	return b
}

// Subscribe registers handler for event. Unknown events and nil handlers are
// ignored and yield the zero Subscription.
func (b *Bus) Subscribe(event string, handler Handler) Subscription {
	if b == nil || handler == nil {
		return Subscription{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.allowed[event]; !ok {
		return Subscription{}
	}

	id := uuid.New()
	b.subscribers[event] = append(b.subscribers[event], subscriber{id: id, handler: handler})
	return Subscription{Event: event, ID: id}
}

// Unsubscribe removes a single subscription.
func (b *Bus) Unsubscribe(sub Subscription) {
	if b == nil || !sub.Valid() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[sub.Event]
	b.subscribers[sub.Event] = slices.DeleteFunc(subs, func(s subscriber) bool {
		return s.id == sub.ID
	})
}

// UnsubscribeAll removes every handler of event, or of all events when event
// is empty.
func (b *Bus) UnsubscribeAll(event string) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if event == "" {
		b.subscribers = make(map[string][]subscriber)
		return
	}
	delete(b.subscribers, event)
}

// Publish calls every handler of event in subscription order.
func (b *Bus) Publish(event string, payload ChangeEvent) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := slices.Clone(b.subscribers[event])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(payload)
	}
}

// Len returns the number of handlers registered for event.
func (b *Bus) Len(event string) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[event])
}
