package observable_test

import (
	"errors"
	"testing"

	"github.com/metacubex/observable"
	"github.com/metacubex/observable/observabletest"

	"github.com/metacubex/randv2"
	"github.com/stretchr/testify/assert"
)

func digits(runes string) map[rune]int {
	values := map[rune]int{}
	for _, r := range runes {
		values[r] = int(r - '0')
	}
	return values
}

func letters(runes string) map[rune]string {
	values := map[rune]string{}
	for _, r := range runes {
		values[r] = string(r)
	}
	return values
}

func below(threshold int) func(int, int) (bool, error) {
	return func(value int, _ int) (bool, error) {
		return value < threshold, nil
	}
}

func TestSkipWhileForwardsFromFirstRejection(t *testing.T) {
	source := observabletest.MustCold("123456|", digits("123456"), nil)
	rec := observabletest.NewRecorder[int]()

	source.Observable().Pipe(observable.SkipWhile(below(4))).Subscribe(rec)

	assert.Equal(t, []int{4, 5, 6}, rec.Values())
	assert.True(t, rec.Completed())

	logs := source.Subscriptions()
	assert.Len(t, logs, 1)
	assert.Equal(t, observabletest.SubscriptionLog{Pushed: 6, Terminated: true}, logs[0])
}

func TestSkipWhilePredicateCallCount(t *testing.T) {
	source := observabletest.MustCold("123456|", digits("123456"), nil)
	calls := 0
	op := observable.SkipWhile(func(value int, _ int) (bool, error) {
		calls++
		return value < 4, nil
	})

	rec := observabletest.NewRecorder[int]()
	source.Observable().Pipe(op).Subscribe(rec)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []int{4, 5, 6}, rec.Values())

	rec = observabletest.NewRecorder[int]()
	source.Observable().Pipe(op).Subscribe(rec)
	assert.Equal(t, 8, calls)
	assert.Equal(t, []int{4, 5, 6}, rec.Values())
	assert.Len(t, source.Subscriptions(), 2)
}

func TestSkipWhileEverythingSkipped(t *testing.T) {
	source := observabletest.MustCold("123456|", digits("123456"), nil)
	calls := 0
	rec := observabletest.NewRecorder[int]()

	source.Observable().Pipe(observable.SkipWhile(func(int, int) (bool, error) {
		calls++
		return true, nil
	})).Subscribe(rec)

	assert.Empty(t, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 6, calls)
}

func TestSkipWhileNothingSkipped(t *testing.T) {
	source := observabletest.MustCold("123456|", digits("123456"), nil)
	calls := 0
	rec := observabletest.NewRecorder[int]()

	source.Observable().Pipe(observable.SkipWhile(func(int, int) (bool, error) {
		calls++
		return false, nil
	})).Subscribe(rec)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 1, calls)
}

func TestSkipWhilePositionalPredicate(t *testing.T) {
	source := observabletest.MustCold("abcdefgh|", letters("abcdefgh"), nil)
	var indexes []int
	rec := observabletest.NewRecorder[string]()

	source.Observable().Pipe(observable.SkipWhile(func(_ string, index int) (bool, error) {
		indexes = append(indexes, index)
		return index == 0, nil
	})).Subscribe(rec)

	assert.Equal(t, []string{"b", "c", "d", "e", "f", "g", "h"}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, []int{0, 1}, indexes)
}

func TestSkipWhileWithTakeStopsSource(t *testing.T) {
	source := observabletest.MustCold("0123456789|", digits("0123456789"), nil)
	rec := observabletest.NewRecorder[int]()

	source.Observable().
		Pipe(observable.SkipWhile(below(2)), observable.Take[int](1)).
		Subscribe(rec)

	assert.Equal(t, []int{2}, rec.Values())
	assert.True(t, rec.Completed())

	logs := source.Subscriptions()
	assert.Len(t, logs, 1)
	assert.Equal(t, observabletest.SubscriptionLog{Pushed: 3, Unsubscribed: true}, logs[0])
}

func TestSkipWhilePredicateFailure(t *testing.T) {
	errMarker := errors.New("marker hit")
	source := observabletest.MustCold("abxcd|", letters("abxcd"), nil)
	rec := observabletest.NewRecorder[string]()

	source.Observable().Pipe(observable.SkipWhile(func(value string, _ int) (bool, error) {
		if value == "x" {
			return false, errMarker
		}
		return true, nil
	})).Subscribe(rec)

	notes := rec.Notifications()
	assert.Len(t, notes, 1)
	assert.Equal(t, observabletest.KindError, notes[0].Kind)
	assert.ErrorIs(t, notes[0].Err, errMarker)

	logs := source.Subscriptions()
	assert.Len(t, logs, 1)
	assert.Equal(t, observabletest.SubscriptionLog{Pushed: 3, Unsubscribed: true}, logs[0])
}

func TestSkipWhileFailedPredicateNotRetried(t *testing.T) {
	errOnce := errors.New("once")
	calls := 0
	rec := observabletest.NewRecorder[int]()

	observable.Just(1, 2, 3).Pipe(observable.SkipWhile(func(int, int) (bool, error) {
		calls++
		return false, errOnce
	})).Subscribe(rec)

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, rec.Err(), errOnce)
	assert.Empty(t, rec.Values())
}

func TestSkipWhileIndexFrozenOnFailure(t *testing.T) {
	var indexes []int
	rec := observabletest.NewRecorder[int]()

	observable.Just(1, 2, 3).Pipe(observable.SkipWhile(func(value int, index int) (bool, error) {
		indexes = append(indexes, index)
		if value == 2 {
			return false, errors.New("stop")
		}
		return true, nil
	})).Subscribe(rec)

	assert.Equal(t, []int{0, 1}, indexes)
}

func TestSkipWhileOnHotSource(t *testing.T) {
	source := observabletest.MustHot("abcd|", letters("abcd"), nil)
	source.FlushUntil(2)

	rec := observabletest.NewRecorder[string]()
	sub := source.Observable().
		Pipe(observable.SkipWhile(func(string, int) (bool, error) { return false, nil })).
		Subscribe(rec)

	source.Flush()
	assert.Equal(t, []string{"c", "d"}, rec.Values())
	assert.True(t, rec.Completed())
	assert.True(t, sub.Closed())
	assert.Equal(t, 0, source.Subject().Len())
}

func TestSkipWhileMatchesReference(t *testing.T) {
	for round := 0; round < 25; round++ {
		length := randv2.IntN(40)
		values := make([]int, length)
		for i := range values {
			values[i] = randv2.IntN(100)
		}
		threshold := randv2.IntN(100)

		expected := []int{}
		skipping := true
		for _, v := range values {
			if skipping && v < threshold {
				continue
			}
			skipping = false
			expected = append(expected, v)
		}

		rec := observabletest.NewRecorder[int]()
		observable.FromSlice(values).Pipe(observable.SkipWhile(below(threshold))).Subscribe(rec)

		assert.Equal(t, expected, rec.Values())
		assert.True(t, rec.Completed())
	}
}
