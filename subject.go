package observable

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Subject is a hot source that multicasts every signal to the subscribers
// registered at delivery time, in subscription order. After a terminal
// signal the registry is dropped and late subscribers receive that signal
// immediately. Subject implements Observer, so it can be subscribed to
// another Observable to rebroadcast it.
type Subject[T any] struct {
	mu      sync.Mutex
	subs    *orderedmap.OrderedMap[*Subscription, *Subscriber[T]]
	stopped bool
	failed  bool
	err     error
}

// Next multicasts value to the current subscribers. After a terminal
// signal it is dropped.
func (s *Subject[T]) Next(value T) {
	for _, sub := range s.snapshot() {
		sub.Next(value)
	}
}

// Error terminates the subject and multicasts err.
func (s *Subject[T]) Error(err error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.failed = true
	s.err = err
	subs := s.detachLocked()
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Error(err)
	}
}

// Complete terminates the subject and multicasts the completion.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	subs := s.detachLocked()
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Complete()
	}
}

// Subscribe registers dest for the signals that follow. On a subject that
// already terminated the terminal signal is replayed to dest at once.
func (s *Subject[T]) Subscribe(dest Observer[T]) *Subscription {
	sub, ok := dest.(*Subscriber[T])
	if !ok {
		sub = NewSubscriber(dest)
	}
	if sub.Closed() {
		return sub.Subscription()
	}
	s.mu.Lock()
	if s.stopped {
		failed, err := s.failed, s.err
		s.mu.Unlock()
		if failed {
			sub.Error(err)
		} else {
			sub.Complete()
		}
		return sub.Subscription()
	}
	handle := sub.Subscription()
	s.subs.Set(handle, sub)
	s.mu.Unlock()
	handle.Add(func() error {
		s.remove(handle)
		return nil
	})
	return handle
}

// AsObservable exposes the subject's read side.
func (s *Subject[T]) AsObservable() *Observable[T] {
	return New(func(dest *Subscriber[T]) {
		s.Subscribe(dest)
	})
}

// Len reports the number of registered subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs.Len()
}

// snapshot copies the registry so delivery runs without the lock and a
// subscriber may unsubscribe, or subscribe others, while being called.
func (s *Subject[T]) snapshot() []*Subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	out := make([]*Subscriber[T], 0, s.subs.Len())
	for pair := s.subs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func (s *Subject[T]) detachLocked() []*Subscriber[T] {
	out := make([]*Subscriber[T], 0, s.subs.Len())
	for pair := s.subs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	s.subs = orderedmap.New[*Subscription, *Subscriber[T]]()
	return out
}

func (s *Subject[T]) remove(handle *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs.Delete(handle)
}

// NewSubject builds an open subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{
		subs: orderedmap.New[*Subscription, *Subscriber[T]](),
	}
}
