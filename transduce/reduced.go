package transduce

// Reduced boxes an accumulator to signal that a reduction finished early.
// A step function returns a *Reduced accumulator to declare that no further
// input can change the outcome; drivers stop pulling input when they see one
// and never invoke the step again.
//
// The box is a distinct type rather than a sentinel value so that any
// accumulator shape, including nil, stays distinguishable from the signal
// carrying it.
type Reduced struct {
	value any
}

// NewReduced wraps an accumulator into a termination signal. Wrapping a value
// that is already a signal returns it unchanged, so the box never nests.
func NewReduced(value any) *Reduced {
	if r, ok := value.(*Reduced); ok {
		return r
	}
	return &Reduced{value: value}
}

// EnsureReduced is an alias of NewReduced used at call sites where the value
// may already carry a termination signal from further down the stack.
func EnsureReduced(value any) *Reduced {
	return NewReduced(value)
}

// Value returns the boxed accumulator.
func (r *Reduced) Value() any {
	if r == nil {
		return nil
	}
	return r.value
}

// IsReduced states whether the value carries a termination signal.
func IsReduced(value any) bool {
	_, ok := value.(*Reduced)
	return ok
}

// Unreduced removes the termination signal if the value carries one and
// returns the value untouched otherwise.
func Unreduced(value any) any {
	if r, ok := value.(*Reduced); ok {
		return r.Value()
	}
	return value
}
