package observable

// Observer consumes the signals of a source. Next may arrive any number of
// times; Error and Complete are terminal and mutually exclusive, and
// nothing follows either of them.
type Observer[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

type callbackObserver[T any] struct {
	next     func(T)
	err      func(error)
	complete func()
}

func (o *callbackObserver[T]) Next(value T) {
	if o.next != nil {
		o.next(value)
	}
}

func (o *callbackObserver[T]) Error(err error) {
	if o.err != nil {
		o.err(err)
		return
	}
	deliverUnhandled(err)
}

func (o *callbackObserver[T]) Complete() {
	if o.complete != nil {
		o.complete()
	}
}

// NewObserver builds an Observer from callbacks, any of which may be nil.
// An error delivered with no err callback goes through OnUnhandledError.
func NewObserver[T any](next func(T), err func(error), complete func()) Observer[T] {
	return &callbackObserver[T]{next: next, err: err, complete: complete}
}
