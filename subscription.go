package observable

import (
	"errors"
	"fmt"
	"sync"

	list "github.com/bahlo/generic-list-go"
)

// OnUnhandledError receives errors that surface where no caller can, such
// as a teardown failure during the automatic release that follows a
// terminal signal. When nil, such errors panic.
var OnUnhandledError func(error)

func deliverUnhandled(err error) {
	if err == nil {
		return
	}
	if hook := OnUnhandledError; hook != nil {
		hook(err)
		return
	}
	panic(err)
}

// Teardown releases a resource held by a Subscription. It may report
// failure by returning an error or by panicking; either way the failure
// surfaces from Unsubscribe and the remaining teardowns still run.
type Teardown func() error

type finalizer struct {
	child    *Subscription
	teardown Teardown
}

// Subscription is the handle to one source execution. Unsubscribing closes
// the handle and runs every registered finalizer exactly once, children
// included, in registration order. The zero value is an open subscription.
type Subscription struct {
	mu         sync.Mutex
	closed     bool
	finalizers *list.List[finalizer]
	parents    []*Subscription
}

// Closed reports whether Unsubscribe has begun.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Add registers teardown to run on Unsubscribe. On a subscription that is
// already closed teardown runs immediately; a failure then has no caller
// to return to and goes through OnUnhandledError.
func (s *Subscription) Add(teardown Teardown) {
	if teardown == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		deliverUnhandled(runTeardown(teardown))
		return
	}
	s.lazyInit()
	s.finalizers.PushBack(finalizer{teardown: teardown})
	s.mu.Unlock()
}

// Link ties child to s so that unsubscribing s also unsubscribes child.
// A child that closes on its own detaches itself again. Linking a closed
// child or the subscription itself is a no-op; linking onto a closed
// parent closes the child immediately.
func (s *Subscription) Link(child *Subscription) {
	if child == nil || child == s || child.Closed() {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		deliverUnhandled(child.Unsubscribe())
		return
	}
	s.lazyInit()
	for e := s.finalizers.Front(); e != nil; e = e.Next() {
		if e.Value.child == child {
			s.mu.Unlock()
			return
		}
	}
	s.finalizers.PushBack(finalizer{child: child})
	s.mu.Unlock()
	child.addParent(s)
}

// Unsubscribe closes the subscription and runs its finalizers in
// registration order. Only the first call does any work; later calls
// return nil. The result joins every teardown failure, recovered panics
// included.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	finalizers := s.finalizers
	s.finalizers = nil
	parents := s.parents
	s.parents = nil
	s.mu.Unlock()

	for _, parent := range parents {
		parent.unlink(s)
	}

	var errs []error
	if finalizers != nil {
		for e := finalizers.Front(); e != nil; e = e.Next() {
			f := e.Value
			if f.child != nil {
				if err := f.child.Unsubscribe(); err != nil {
					errs = append(errs, err)
				}
			} else if err := runTeardown(f.teardown); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// lazyInit backs the zero value. Callers hold s.mu.
func (s *Subscription) lazyInit() {
	if s.finalizers == nil {
		s.finalizers = list.New[finalizer]()
	}
}

func (s *Subscription) addParent(parent *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, p := range s.parents {
		if p == parent {
			return
		}
	}
	s.parents = append(s.parents, parent)
}

// unlink drops child from the finalizer chain without running it.
func (s *Subscription) unlink(child *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalizers == nil {
		return
	}
	for e := s.finalizers.Front(); e != nil; e = e.Next() {
		if e.Value.child == child {
			s.finalizers.Remove(e)
			return
		}
	}
}

func runTeardown(teardown Teardown) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("teardown panic: %v", r)
			}
		}
	}()
	return teardown()
}

// NewSubscription builds an open subscription with the given teardowns
// already registered.
func NewSubscription(teardowns ...Teardown) *Subscription {
	s := &Subscription{}
	for _, teardown := range teardowns {
		s.Add(teardown)
	}
	return s
}
