package observable

// Just emits the given values in order, then completes.
func Just[T any](values ...T) *Observable[T] {
	return FromSlice(values)
}

// FromSlice emits every element of values in order, then completes. The
// walk rechecks the subscriber between elements, so a consumer that
// unsubscribes mid stream stops it at once.
func FromSlice[T any](values []T) *Observable[T] {
	return New(func(s *Subscriber[T]) {
		for _, value := range values {
			if s.Closed() {
				return
			}
			s.Next(value)
		}
		s.Complete()
	})
}

// Range emits count integers starting at start, then completes.
func Range(start, count int) *Observable[int] {
	return New(func(s *Subscriber[int]) {
		for i := 0; i < count; i++ {
			if s.Closed() {
				return
			}
			s.Next(start + i)
		}
		s.Complete()
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() *Observable[T] {
	return New(func(s *Subscriber[T]) {
		s.Complete()
	})
}

// Never neither emits nor terminates. Its subscription still closes
// normally through Unsubscribe.
func Never[T any]() *Observable[T] {
	return New(func(s *Subscriber[T]) {})
}

// Throw errors immediately with err.
func Throw[T any](err error) *Observable[T] {
	return New(func(s *Subscriber[T]) {
		s.Error(err)
	})
}

// Defer calls factory once per subscription and subscribes to its result.
func Defer[T any](factory func() *Observable[T]) *Observable[T] {
	return New(func(s *Subscriber[T]) {
		factory().Subscribe(s)
	})
}
