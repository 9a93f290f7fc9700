// Package events provides event publishing and subscription for waveview.
package events

import (
	"sync"
	"time"

	"github.com/fh2207/waveview/internal/point"
)

// Handler is a callback function invoked when an event matches a subscription.
type Handler func(event *point.Event)

// Filter defines criteria for matching events.
type Filter struct {
	// Types filters by event type (nil = all types).
	Types []point.EventType

	// PointID filters to events about a specific point (empty = all).
	PointID string

	// ExcludeSource drops events published by the named source. Views use
	// this to ignore their own drag notifications.
	ExcludeSource string
}

// Matches returns true if the event matches the filter criteria.
func (f *Filter) Matches(event *point.Event) bool {
	if event == nil {
		return false
	}

	if len(f.Types) > 0 {
		matched := false
		for _, t := range f.Types {
			if event.Type == t {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.PointID != "" {
		if event.Point == nil || event.Point.ID != f.PointID {
			return false
		}
	}

	if f.ExcludeSource != "" && event.Source == f.ExcludeSource {
		return false
	}

	return true
}

// subscription represents an active event subscription.
type subscription struct {
	id      string
	filter  Filter
	handler Handler
}

// Bus is an in-process, synchronous pub/sub bus. Handlers run on the
// publisher's goroutine in publish order, so subscribers observe
// notifications strictly in arrival order.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	order         []string
}

// NewBus creates a new in-memory event bus.
func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[string]*subscription),
	}
}

// Publish sends an event to all matching subscribers, synchronously.
func (b *Bus) Publish(event *point.Event) {
	if event == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	// Collect matching handlers under the read lock, invoke outside it so
	// handlers may subscribe or unsubscribe without deadlocking.
	b.mu.RLock()
	var handlers []Handler
	for _, id := range b.order {
		sub, ok := b.subscriptions[id]
		if !ok {
			continue
		}
		if sub.filter.Matches(event) {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe registers a handler to receive events matching the filter.
// The id must be unique and is used for later unsubscription.
func (b *Bus) Subscribe(id string, filter Filter, handler Handler) error {
	if id == "" {
		return ErrInvalidSubscriptionID
	}
	if handler == nil {
		return ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[id]; exists {
		return ErrSubscriptionExists
	}

	b.subscriptions[id] = &subscription{
		id:      id,
		filter:  filter,
		handler: handler,
	}
	b.order = append(b.order, id)

	return nil
}

// Unsubscribe removes a subscription by ID.
func (b *Bus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[id]; !exists {
		return ErrSubscriptionNotFound
	}

	delete(b.subscriptions, id)
	for i, sid := range b.order {
		if sid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}

// Close removes all subscriptions.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[string]*subscription)
	b.order = nil
}

// Errors for bus operations.
var (
	ErrInvalidSubscriptionID = &BusError{Message: "subscription ID is required"}
	ErrNilHandler            = &BusError{Message: "handler cannot be nil"}
	ErrSubscriptionExists    = &BusError{Message: "subscription with this ID already exists"}
	ErrSubscriptionNotFound  = &BusError{Message: "subscription not found"}
)

// BusError represents an error from bus operations.
type BusError struct {
	Message string
}

func (e *BusError) Error() string {
	return e.Message
}
