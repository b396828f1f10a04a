package transduce

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
)

func drain(t *testing.T, seq iter.Seq2[any, error]) []any {
	var elements []any
	for out, err := range seq {
		require.NoError(t, err)
		elements = append(elements, out)
	}
	return elements
}

func TestIterate(t *testing.T) {
	defer goleak.VerifyNone(t)

	seq := Iterate(Compose(Map(double), Filter(even)), mustFrom(t, []int{1, 2, 3}))
	assert.Equal(t, []any{2, 4, 6}, drain(t, seq))
}

func TestIteratePullsOneElementAtATime(t *testing.T) {
	defer goleak.VerifyNone(t)

	pulled := 0
	source := func(yield func(any) bool) {
		for i := 1; i <= 100; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	count := 0
	for out, err := range Iterate(Identity(), source) {
		require.NoError(t, err)
		count++
		assert.Equal(t, count, out)
		assert.Equal(t, count, pulled, "no element is pulled before the previous output is consumed")
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestIterateConsumesInfiniteSources(t *testing.T) {
	defer goleak.VerifyNone(t)

	naturals := func(yield func(any) bool) {
		for i := 1; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	seq := Iterate(Compose(Filter(odd), Take(3)), naturals)
	assert.Equal(t, []any{1, 3, 5}, drain(t, seq))
}

func TestIterateFlushesTrailingOutput(t *testing.T) {
	defer goleak.VerifyNone(t)

	seq := Iterate(Partition(2), mustFrom(t, []int{1, 2, 3, 4, 5}))
	assert.Equal(t, []any{[]any{1, 2}, []any{3, 4}, []any{5}}, drain(t, seq))
}

func TestIterateYieldsCallbackErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	var outputs []any
	var failure error
	for out, err := range Iterate(Map(double), mustFrom(t, []any{1, "two"})) {
		if err != nil {
			failure = err
			break
		}
		outputs = append(outputs, out)
	}
	assert.Equal(t, []any{2}, outputs)
	errortest.AssertError(t, failure, commonerrors.ErrInvalid)
}

func TestIterateIsSingleUse(t *testing.T) {
	defer goleak.VerifyNone(t)

	seq := Iterate(Identity(), mustFrom(t, []int{1, 2}))
	assert.Equal(t, []any{1, 2}, drain(t, seq))

	var second error
	for _, err := range seq {
		second = err
		break
	}
	errortest.AssertError(t, second, commonerrors.ErrConflict)
}

func TestIterateAbandonedRangeStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	completions := 0
	observeComplete := func(rf Reducer) Reducer {
		return wrap(rf, rf.Step, func(result any) (any, error) {
			completions++
			return rf.Complete(result)
		})
	}

	for out, err := range Iterate(observeComplete, mustFrom(t, []int{1, 2, 3})) {
		require.NoError(t, err)
		assert.Equal(t, 1, out)
		break
	}
	assert.Zero(t, completions, "an abandoned range is not completed")
}

func TestIterateRejectsMissingArguments(t *testing.T) {
	var failure error
	for _, err := range Iterate(nil, mustFrom(t, []int{1})) {
		failure = err
	}
	errortest.AssertError(t, failure, commonerrors.ErrUndefined)

	for _, err := range Iterate(Identity(), nil) {
		failure = err
	}
	errortest.AssertError(t, failure, commonerrors.ErrUndefined)
}
