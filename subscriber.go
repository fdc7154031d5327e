package observable

import "sync"

// Subscriber delivers signals to a destination Observer while holding the
// source contract: at most one terminal signal goes through, nothing is
// delivered after it or after the subscription closes, and the first
// terminal signal releases the execution's resources.
type Subscriber[T any] struct {
	mu      sync.Mutex
	stopped bool
	dest    Observer[T]
	sub     *Subscription
}

// Closed reports whether the subscriber no longer accepts signals, because
// a terminal signal went through or the subscription closed. Producers
// check this between pushes so a consumer can stop them mid stream.
func (s *Subscriber[T]) Closed() bool {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	return stopped || s.sub.Closed()
}

// Next delivers a value downstream. Calls on a closed subscriber are
// dropped.
func (s *Subscriber[T]) Next(value T) {
	if s.Closed() {
		return
	}
	s.dest.Next(value)
}

// Error delivers the terminal error downstream, then releases the
// execution.
func (s *Subscriber[T]) Error(err error) {
	if !s.markStopped() {
		return
	}
	s.dest.Error(err)
	s.finalize()
}

// Complete delivers the terminal completion downstream, then releases the
// execution.
func (s *Subscriber[T]) Complete() {
	if !s.markStopped() {
		return
	}
	s.dest.Complete()
	s.finalize()
}

// Unsubscribe stops the subscriber without a terminal signal and closes
// its subscription.
func (s *Subscriber[T]) Unsubscribe() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.sub.Unsubscribe()
}

// Subscription returns the handle controlling this execution.
func (s *Subscriber[T]) Subscription() *Subscription {
	return s.sub
}

// Add registers teardown with the execution's subscription.
func (s *Subscriber[T]) Add(teardown Teardown) {
	s.sub.Add(teardown)
}

// markStopped claims the terminal slot. It reports false when the
// subscriber already stopped or its subscription closed, in which case the
// caller must not deliver.
func (s *Subscriber[T]) markStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.sub.Closed() {
		return false
	}
	s.stopped = true
	return true
}

func (s *Subscriber[T]) finalize() {
	deliverUnhandled(s.sub.Unsubscribe())
}

// operatorSubscriber chains an operator stage onto dest: the returned
// subscriber rewrites Next, forwards the terminal signals unchanged and is
// linked so that closing dest tears the stage down with it.
func operatorSubscriber[T, R any](dest *Subscriber[R], onNext func(T)) *Subscriber[T] {
	s := NewSubscriber[T](NewObserver(onNext, dest.Error, dest.Complete))
	dest.Subscription().Link(s.Subscription())
	return s
}

// NewSubscriber wraps dest in a fresh subscriber with its own open
// subscription and its own terminal state.
func NewSubscriber[T any](dest Observer[T]) *Subscriber[T] {
	return &Subscriber[T]{
		dest: dest,
		sub:  NewSubscription(),
	}
}
