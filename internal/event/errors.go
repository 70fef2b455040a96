package event

import "errors"

// Event bus errors.
var (
	// ErrInvalidTopic indicates a subscription pattern is malformed.
	ErrInvalidTopic = errors.New("event: invalid topic pattern")

	// ErrNilHandler indicates a subscription was attempted with no handler.
	ErrNilHandler = errors.New("event: nil handler")

	// ErrBusClosed indicates the bus has been closed.
	ErrBusClosed = errors.New("event: bus is closed")

	// ErrSubscriberClosed indicates the subscriber has been closed.
	ErrSubscriberClosed = errors.New("event: subscriber is closed")
)
