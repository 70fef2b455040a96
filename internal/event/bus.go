package event

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/docnav/internal/event/topic"
)

// Handler processes a published envelope.
type Handler interface {
	Handle(ctx context.Context, env Envelope) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, env Envelope) error

// Handle calls the function.
func (f HandlerFunc) Handle(ctx context.Context, env Envelope) error {
	return f(ctx, env)
}

// Subscription represents an active subscription on the bus.
type Subscription interface {
	// ID is the unique identifier of the subscription.
	ID() string

	// Pattern is the topic pattern the subscription matches.
	Pattern() topic.Topic

	// Cancel removes the subscription from the bus.
	Cancel()
}

// subscription is the internal Subscription implementation.
type subscription struct {
	id      string
	pattern topic.Topic
	handler Handler
	bus     *Bus
}

func (s *subscription) ID() string           { return s.id }
func (s *subscription) Pattern() topic.Topic { return s.pattern }
func (s *subscription) Cancel()              { s.bus.unsubscribe(s.id) }

// Stats reports bus counters.
type Stats struct {
	// Subscriptions is the number of active subscriptions.
	Subscriptions int

	// Published is the total number of envelopes published.
	Published uint64

	// Delivered is the total number of handler invocations.
	Delivered uint64

	// HandlerErrors is the total number of handler errors.
	HandlerErrors uint64
}

// Bus is a synchronous in-process event bus.
//
// Delivery is in-order and on the publisher's goroutine: Publish returns
// only after every matching handler has run. This keeps the navigation
// model single-threaded; handlers must not block.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	closed bool

	published     uint64
	delivered     uint64
	handlerErrors uint64
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every topic matching the pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !patternValid(pattern) {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	sub := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		bus:     b,
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

// SubscribeFunc registers a function handler for the pattern.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	return b.Subscribe(pattern, fn)
}

// Publish delivers the envelope to all matching handlers in subscription
// order. Handler errors are joined and returned; delivery continues past
// failing handlers.
func (b *Bus) Publish(ctx context.Context, env Envelope) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	// Snapshot matching handlers so handlers may subscribe or cancel
	// without deadlocking.
	var matched []*subscription
	for _, sub := range b.subs {
		if env.Topic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, sub := range matched {
		if err := sub.handler.Handle(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}

	b.mu.Lock()
	b.published++
	b.delivered += uint64(len(matched))
	b.handlerErrors += uint64(len(errs))
	b.mu.Unlock()

	return errors.Join(errs...)
}

// Close shuts the bus down. Further Publish and Subscribe calls fail with
// ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
}

// Stats returns a snapshot of bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Stats{
		Subscriptions: len(b.subs),
		Published:     b.published,
		Delivered:     b.delivered,
		HandlerErrors: b.handlerErrors,
	}
}

func (b *Bus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// patternValid reports whether the pattern is a well-formed topic or
// wildcard pattern.
func patternValid(pattern topic.Topic) bool {
	return pattern.IsValid()
}
