package event

import (
	"sync"

	"github.com/dshills/docnav/internal/event/topic"
)

// Subscriber provides a simplified API for subscribing to events.
// It tracks its subscriptions and cancels them all on Close.
type Subscriber struct {
	bus           *Bus
	mu            sync.Mutex
	subscriptions []Subscription
	closed        bool
}

// NewSubscriber creates a new Subscriber wrapping the given bus.
func NewSubscriber(bus *Bus) *Subscriber {
	return &Subscriber{bus: bus}
}

// Subscribe creates a tracked subscription for the given pattern.
func (s *Subscriber) Subscribe(pattern topic.Topic, handler Handler) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	sub, err := s.bus.Subscribe(pattern, handler)
	if err != nil {
		return nil, err
	}

	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}

// SubscribeFunc creates a tracked subscription with a function handler.
func (s *Subscriber) SubscribeFunc(pattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	return s.Subscribe(pattern, fn)
}

// Close cancels all subscriptions created through this subscriber.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for _, sub := range s.subscriptions {
		sub.Cancel()
	}
	s.subscriptions = nil
}
