package observabletest

import (
	"sync"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Recorder is an Observer that stores every signal it receives for
// asserting on afterwards. It is safe to share between goroutines.
type Recorder[T any] struct {
	mu    sync.Mutex
	notes []Notification[T]
}

func (r *Recorder[T]) Next(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Notification[T]{Kind: KindNext, Value: value, Tick: len(r.notes)})
}

func (r *Recorder[T]) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Notification[T]{Kind: KindError, Err: err, Tick: len(r.notes)})
}

func (r *Recorder[T]) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Notification[T]{Kind: KindComplete, Tick: len(r.notes)})
}

// Notifications returns a snapshot of everything recorded, in arrival
// order.
func (r *Recorder[T]) Notifications() []Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.notes)
}

// Values returns the payloads of the value notifications in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.FilterMap(r.notes, func(n Notification[T], _ int) (T, bool) {
		return n.Value, n.Kind == KindNext
	})
}

// Err returns the recorded terminal error, or nil.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.Kind == KindError {
			return n.Err
		}
	}
	return nil
}

// Terminated reports whether any terminal signal was recorded.
func (r *Recorder[T]) Terminated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.SomeBy(r.notes, func(n Notification[T]) bool {
		return n.Kind != KindNext
	})
}

// Completed reports whether a completion was recorded.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.SomeBy(r.notes, func(n Notification[T]) bool {
		return n.Kind == KindComplete
	})
}

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}
