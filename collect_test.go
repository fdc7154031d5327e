package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/metacubex/observable"

	"github.com/stretchr/testify/assert"
)

func TestCollectSynchronousSource(t *testing.T) {
	values, err := observable.Collect(context.Background(), observable.Range(1, 4))
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, values)
}

func TestCollectReturnsTerminalError(t *testing.T) {
	errBoom := errors.New("boom")
	obs := observable.New(func(s *observable.Subscriber[int]) {
		s.Next(1)
		s.Error(errBoom)
	})

	values, err := observable.Collect(context.Background(), obs)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1}, values)
}

func TestCollectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	values, err := observable.Collect(ctx, observable.Never[int]())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, values)
}

func TestCollectAsynchronousSource(t *testing.T) {
	subject := observable.NewSubject[int]()
	obs := observable.New(func(s *observable.Subscriber[int]) {
		subject.Subscribe(s)
		go func() {
			subject.Next(1)
			subject.Next(2)
			subject.Complete()
		}()
	})

	values, err := observable.Collect(context.Background(), obs)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)
}
