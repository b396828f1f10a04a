package transduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
)

func sum(result, input any) (any, error) {
	if result == nil {
		return input, nil
	}
	return result.(int) + input.(int), nil
}

func TestNewReducerRequiresStep(t *testing.T) {
	_, err := NewReducer(nil, nil, nil)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)

	_, err = Reducing(nil)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
}

func TestNewReducerDefaults(t *testing.T) {
	rf, err := Reducing(sum)
	require.NoError(t, err)

	assert.Nil(t, rf.Init())

	result, err := rf.Step(rf.Init(), 1)
	require.NoError(t, err)
	result, err = rf.Step(result, 2)
	require.NoError(t, err)

	// Default completion is identity.
	completed, err := rf.Complete(result)
	require.NoError(t, err)
	assert.Equal(t, 3, completed)
}

func TestNewReducerStages(t *testing.T) {
	rf, err := NewReducer(
		func() any { return 10 },
		sum,
		func(result any) (any, error) { return result.(int) * 2, nil },
	)
	require.NoError(t, err)

	assert.Equal(t, 10, rf.Init())
	result, err := rf.Step(rf.Init(), 5)
	require.NoError(t, err)
	completed, err := rf.Complete(result)
	require.NoError(t, err)
	assert.Equal(t, 30, completed)
}

func TestCompleting(t *testing.T) {
	rf, err := Completing(sum, func(result any) (any, error) {
		return result.(int) + 100, nil
	})
	require.NoError(t, err)

	result, err := Transduce(Identity(), rf, sequence.Of(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 106, result)
}
