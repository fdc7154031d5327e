package channel

import "sync"

// InfiniteChannel couples an input and an output channel through an
// unbounded buffer, so sends never block. After Close the buffer keeps
// draining to the output, which is closed once empty.
type InfiniteChannel[T any] struct {
	in     chan T
	out    chan T
	length chan int
	buffer []T
	once   sync.Once
}

func (ch *InfiniteChannel[T]) In() chan<- T {
	return ch.in
}

func (ch *InfiniteChannel[T]) Out() <-chan T {
	return ch.out
}

func (ch *InfiniteChannel[T]) Len() int {
	return <-ch.length
}

// Close stops the input side. Later calls are no-ops.
func (ch *InfiniteChannel[T]) Close() {
	ch.once.Do(func() {
		close(ch.in)
	})
}

func (ch *InfiniteChannel[T]) infiniteBuffer() {
	var zero, next T
	input, output := ch.in, chan T(nil)

	for input != nil || output != nil {
		select {
		case item, ok := <-input:
			if ok {
				ch.buffer = append(ch.buffer, item)
			} else {
				input = nil
			}
		case output <- next:
			ch.buffer[0] = zero
			ch.buffer = ch.buffer[1:]
		case ch.length <- len(ch.buffer):
		}

		if len(ch.buffer) > 0 {
			output = ch.out
			next = ch.buffer[0]
		} else {
			output = nil
			next = zero
		}
	}

	close(ch.out)
	close(ch.length)
}

func NewInfiniteChannel[T any]() *InfiniteChannel[T] {
	ch := &InfiniteChannel[T]{
		in:     make(chan T),
		out:    make(chan T),
		length: make(chan int),
	}

	go ch.infiniteBuffer()

	return ch
}
