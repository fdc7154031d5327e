package observable_test

import (
	"testing"

	"github.com/metacubex/observable"
	"github.com/metacubex/observable/observabletest"

	"github.com/stretchr/testify/assert"
)

func TestSkipDropsLeadingValues(t *testing.T) {
	source := observabletest.MustCold("abcd|", letters("abcd"), nil)
	rec := observabletest.NewRecorder[string]()

	source.Observable().Pipe(observable.Skip[string](2)).Subscribe(rec)

	assert.Equal(t, []string{"c", "d"}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestSkipZeroIsIdentity(t *testing.T) {
	rec := observabletest.NewRecorder[int]()

	observable.Just(1, 2, 3).Pipe(observable.Skip[int](0)).Subscribe(rec)

	assert.Equal(t, []int{1, 2, 3}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestSkipPastEnd(t *testing.T) {
	rec := observabletest.NewRecorder[int]()

	observable.Just(1, 2).Pipe(observable.Skip[int](10)).Subscribe(rec)

	assert.Empty(t, rec.Values())
	assert.True(t, rec.Completed())
}
