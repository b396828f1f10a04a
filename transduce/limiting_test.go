package transduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTake(t *testing.T) {
	result, err := ToSlice(Take(3), []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, result)
}

func TestTakeMoreThanAvailable(t *testing.T) {
	result, err := ToSlice(Take(10), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, result)
}

func TestTakeZeroNeverSteps(t *testing.T) {
	counting := &countingReducer{}
	result, err := Transduce(Take(0), counting, mustFrom(t, []int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []any{}, result)
	assert.Zero(t, counting.steps)
	assert.Equal(t, 1, counting.completes)
}

func TestTakeStopsPullingInput(t *testing.T) {
	pulled := 0
	source := func(yield func(any) bool) {
		for i := 1; ; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}
	result, err := Transduce(Take(3), AppendReducer(), source)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, result)
	assert.Equal(t, 3, pulled, "an infinite source is only pulled as far as needed")
}

func TestTakeWhile(t *testing.T) {
	result, err := ToSlice(TakeWhile(func(i int) bool { return i < 4 }), []int{1, 2, 3, 4, 5, 1})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, result, "elements after the first rejection stay out, smaller ones included")
}

func TestTakeNth(t *testing.T) {
	result, err := ToSlice(TakeNth(3), []int{0, 1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []any{0, 3, 6}, result)

	everything, err := ToSlice(TakeNth(1), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, everything)

	assert.Panics(t, func() { TakeNth(0) })
}

func TestDrop(t *testing.T) {
	result, err := ToSlice(Drop(2), []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 4}, result)

	none, err := ToSlice(Drop(10), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{}, none)
}

func TestDropWhile(t *testing.T) {
	result, err := ToSlice(DropWhile(func(i int) bool { return i < 3 }), []int{1, 2, 3, 1, 4})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 1, 4}, result, "once dropping stops it never resumes")
}

func TestDropThenTakeSelectsAWindow(t *testing.T) {
	source := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	result, err := ToSlice(Compose(Drop(3), Take(4)), source)
	require.NoError(t, err)
	assert.Equal(t, []any{3, 4, 5, 6}, result)
}
