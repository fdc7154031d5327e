// Package observable implements a synchronous push stream core. An
// Observable is a lazy recipe that, once subscribed, pushes values into a
// Subscriber until it terminates or the returned Subscription is closed.
// Delivery is synchronous and runs in the caller's goroutine; cancellation
// is cooperative, with producers checking Closed between pushes.
package observable

// Observable is a lazy push source. The recipe runs once per Subscribe
// call and each run delivers to its own Subscriber, so executions never
// share state.
type Observable[T any] struct {
	subscribe func(*Subscriber[T])
}

// Operator transforms one Observable into another. Operators built by this
// package subscribe to the upstream lazily, once per downstream Subscribe.
type Operator[T, R any] func(*Observable[T]) *Observable[R]

// Subscribe runs the recipe against dest and returns the handle that
// controls the execution. A dest that is already a *Subscriber is used
// as is, so one that has stopped stays stopped and the recipe does not
// run.
func (o *Observable[T]) Subscribe(dest Observer[T]) *Subscription {
	s, ok := dest.(*Subscriber[T])
	if !ok {
		s = NewSubscriber(dest)
	}
	if !s.Closed() {
		o.subscribe(s)
	}
	return s.Subscription()
}

// SubscribeFunc subscribes with callbacks, any of which may be nil. An
// error delivered with no err callback goes through OnUnhandledError.
func (o *Observable[T]) SubscribeFunc(next func(T), err func(error), complete func()) *Subscription {
	return o.Subscribe(NewObserver(next, err, complete))
}

// Pipe applies type preserving operators left to right. Operators that
// change the element type are applied directly instead.
func (o *Observable[T]) Pipe(ops ...Operator[T, T]) *Observable[T] {
	out := o
	for _, op := range ops {
		out = op(out)
	}
	return out
}

// New builds an Observable from a recipe. The recipe runs synchronously
// inside Subscribe and should check the subscriber's Closed between pushes
// so a consumer can stop it mid stream.
func New[T any](subscribe func(*Subscriber[T])) *Observable[T] {
	return &Observable[T]{subscribe: subscribe}
}
