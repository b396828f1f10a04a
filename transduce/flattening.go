package transduce

import (
	"github.com/ARM-software/golang-transducers/transducers/sequence"
)

// Cat returns a transducer concatenating one level of nested collections
// into the reduction. Elements that are not collections, strings included,
// pass through unchanged. A termination signal raised while folding an inner
// collection propagates to the outer reduction.
func Cat() Transducer {
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			inner, ok := sequence.FromCollection(input)
			if !ok {
				return rf.Step(result, input)
			}
			return fold(rf.Step, result, inner)
		}, nil)
	}
}

// Mapcat returns a transducer applying f to every element and concatenating
// the resulting collections into the reduction.
func Mapcat[I any](f func(I) any) Transducer {
	if f == nil {
		panic("transduce.Mapcat: f is nil")
	}
	return Compose(Map(f), Cat())
}

// Flatten returns a transducer flattening nested collections into a flat
// element flow, whatever their nesting depth. Strings are leaves.
func Flatten() Transducer {
	return func(rf Reducer) Reducer {
		var step StepFunc
		step = func(result, input any) (any, error) {
			inner, ok := sequence.FromCollection(input)
			if !ok {
				return rf.Step(result, input)
			}
			return fold(step, result, inner)
		}
		return wrap(rf, step, nil)
	}
}
