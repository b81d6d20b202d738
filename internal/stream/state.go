package stream

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// DefaultGrace is how long a State keeps its producer running after the last
// subscriber detaches. It is long enough to survive a configuration-change
// style resubscription without restarting the upstream work.
const DefaultGrace = 5 * time.Second

// Producer feeds a State. It runs on its own goroutine while at least one
// subscriber is attached (plus the grace period) and publishes values
// through set. It must return promptly when ctx is cancelled. A producer may
// be started again after it has been stopped; the State's current value
// survives across runs.
type Producer[T any] func(ctx context.Context, set func(T))

// State is a multicast, replay-latest observable value. It always holds a
// defined current value; subscribers receive that value immediately and then
// every subsequent distinct value. Delivery is conflated: a slow subscriber
// only ever sees the latest value and never blocks the producer.
type State[T any] struct {
	parent   context.Context
	producer Producer[T]
	grace    time.Duration
	done     chan struct{}

	mu         sync.Mutex
	value      T
	subs       map[*subscriber[T]]struct{}
	cancelProd context.CancelFunc
	stopTimer  *time.Timer
	closed     bool
}

type subscriber[T any] struct {
	ch chan T
}

// Option configures a State.
type Option func(*options)

type options struct {
	grace time.Duration
}

// WithGrace overrides the keep-warm period applied after the last subscriber
// detaches. Zero stops the producer immediately.
func WithGrace(d time.Duration) Option {
	return func(o *options) {
		o.grace = d
	}
}

// NewState creates a State with the given initial value. The producer is not
// started until the first subscriber attaches. ctx is the owning scope:
// cancelling it stops the producer for good.
func NewState[T any](ctx context.Context, initial T, producer Producer[T], opts ...Option) *State[T] {
	o := options{grace: DefaultGrace}
	for _, opt := range opts {
		opt(&o)
	}
	return &State[T]{
		parent:   ctx,
		producer: producer,
		grace:    o.grace,
		done:     make(chan struct{}),
		value:    initial,
		subs:     make(map[*subscriber[T]]struct{}),
	}
}

// Value returns the current value synchronously. It does not start the
// producer.
func (s *State[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe attaches an observer. The returned channel immediately carries
// the current value, then every subsequent distinct value. The subscription
// ends when ctx is cancelled or the State is closed; the channel is closed
// either way. Subscribing to a closed State returns an already-closed
// channel.
func (s *State[T]) Subscribe(ctx context.Context) <-chan T {
	sub := &subscriber[T]{ch: make(chan T, 1)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	sub.ch <- s.value
	s.subs[sub] = struct{}{}
	if s.stopTimer != nil {
		s.stopTimer.Stop()
		s.stopTimer = nil
	}
	if s.cancelProd == nil {
		pctx, cancel := context.WithCancel(s.parent)
		s.cancelProd = cancel
		go s.producer(pctx, s.publish)
	}
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.detach(sub)
	}()

	return sub.ch
}

// Close permanently tears the State down: the producer is cancelled and all
// subscriber channels are closed. Safe to call more than once.
func (s *State[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.stopTimer != nil {
		s.stopTimer.Stop()
		s.stopTimer = nil
	}
	s.stopProducerLocked()
	subs := s.subs
	s.subs = make(map[*subscriber[T]]struct{})
	s.mu.Unlock()

	close(s.done)
	for sub := range subs {
		close(sub.ch)
	}
}

// publish is the set callback handed to the producer. Values equal to the
// current one are dropped so identical upstream emissions cause no
// subscriber churn.
func (s *State[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || reflect.DeepEqual(v, s.value) {
		return
	}
	s.value = v
	for sub := range s.subs {
		select {
		case sub.ch <- v:
		default:
			// Conflate: replace the undelivered value with the newest one.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- v
		}
	}
}

func (s *State[T]) detach(sub *subscriber[T]) {
	s.mu.Lock()
	if _, ok := s.subs[sub]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.subs, sub)
	if len(s.subs) == 0 && !s.closed && s.cancelProd != nil {
		if s.grace == 0 {
			s.stopProducerLocked()
		} else {
			s.stopTimer = time.AfterFunc(s.grace, s.graceExpired)
		}
	}
	s.mu.Unlock()
	close(sub.ch)
}

// graceExpired stops the producer unless a subscriber reattached while the
// timer was pending.
func (s *State[T]) graceExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer = nil
	if len(s.subs) == 0 && !s.closed {
		s.stopProducerLocked()
	}
}

func (s *State[T]) stopProducerLocked() {
	if s.cancelProd != nil {
		s.cancelProd()
		s.cancelProd = nil
	}
}
