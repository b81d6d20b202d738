// Package stream provides the small reactive primitives the application is
// built on: upstream events that carry a value or a failure, and a
// replay-latest multicast State that keeps its producer warm across brief
// unsubscribe/resubscribe sequences.
package stream

// Event is a single emission from an upstream source: either a value or a
// failure. A failed emission does not terminate the stream; later events may
// carry values again.
type Event[T any] struct {
	Value T
	Err   error
}

// Next wraps a value emission.
func Next[T any](v T) Event[T] {
	return Event[T]{Value: v}
}

// Fail wraps a failure emission.
func Fail[T any](err error) Event[T] {
	return Event[T]{Err: err}
}
