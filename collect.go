package observable

import (
	"context"
	"errors"
	"sync"
)

// Collect subscribes to o and blocks until it terminates, returning every
// value delivered. A synchronous source terminates during Subscribe and
// Collect returns immediately; a hot source is awaited. Cancelling ctx
// unsubscribes and returns the values received so far together with ctx's
// error.
func Collect[T any](ctx context.Context, o *Observable[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
		cause  error
	)
	done := make(chan struct{})
	sub := o.Subscribe(NewObserver(
		func(value T) {
			mu.Lock()
			values = append(values, value)
			mu.Unlock()
		},
		func(err error) {
			mu.Lock()
			cause = err
			mu.Unlock()
			close(done)
		},
		func() {
			close(done)
		},
	))

	select {
	case <-done:
	case <-ctx.Done():
		err := errors.Join(ctx.Err(), sub.Unsubscribe())
		mu.Lock()
		defer mu.Unlock()
		return values, err
	}

	mu.Lock()
	defer mu.Unlock()
	return values, cause
}
