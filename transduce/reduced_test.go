package transduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReducedWrapsAnyAccumulator(t *testing.T) {
	r := NewReduced(42)
	assert.True(t, IsReduced(r))
	assert.Equal(t, 42, r.Value())
	assert.Equal(t, 42, Unreduced(r))

	// A nil accumulator stays distinguishable from the signal carrying it.
	boxedNil := NewReduced(nil)
	assert.True(t, IsReduced(boxedNil))
	assert.Nil(t, boxedNil.Value())
}

func TestReducedNeverNests(t *testing.T) {
	inner := NewReduced("done")
	assert.Same(t, inner, NewReduced(inner))
	assert.Same(t, inner, EnsureReduced(inner))
	assert.Equal(t, "done", Unreduced(NewReduced(inner)))
}

func TestIsReducedOnPlainValues(t *testing.T) {
	assert.False(t, IsReduced(42))
	assert.False(t, IsReduced(nil))
	assert.False(t, IsReduced([]any{1}))
	assert.Equal(t, 42, Unreduced(42))
	assert.Nil(t, Unreduced(nil))
}
