package transduce

import (
	"github.com/go-logr/logr"
)

//
// Element-wise transducers
//
// Constructors take typed callbacks and adapt them to the untyped element
// flow; an element that does not fit the callback's parameter type fails the
// reduction with ErrInvalid. Nil callbacks are construction mistakes and
// panic immediately.
//

// Map returns a transducer applying f to every element.
func Map[I, O any](f func(I) O) Transducer {
	if f == nil {
		panic("transduce.Map: f is nil")
	}
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			return rf.Step(result, f(in))
		}, nil)
	}
}

// Filter returns a transducer keeping only the elements the predicate
// accepts.
func Filter[I any](predicate func(I) bool) Transducer {
	if predicate == nil {
		panic("transduce.Filter: predicate is nil")
	}
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			if !predicate(in) {
				return result, nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// Remove returns a transducer dropping the elements the predicate accepts.
// It mirrors Filter.
func Remove[I any](predicate func(I) bool) Transducer {
	if predicate == nil {
		panic("transduce.Remove: predicate is nil")
	}
	return Filter(func(in I) bool { return !predicate(in) })
}

// Keep returns a transducer stepping f's result for every element where it is
// not nil. Unlike Map, the produced value replaces the element and nil
// results are dropped.
func Keep[I any](f func(I) any) Transducer {
	if f == nil {
		panic("transduce.Keep: f is nil")
	}
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			if kept := f(in); kept != nil {
				return rf.Step(result, kept)
			}
			return result, nil
		}, nil)
	}
}

// KeepIndexed is similar to Keep but f also receives the zero-based position
// of the element in the incoming flow.
func KeepIndexed[I any](f func(index int, value I) any) Transducer {
	if f == nil {
		panic("transduce.KeepIndexed: f is nil")
	}
	return func(rf Reducer) Reducer {
		index := -1
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			index++
			if kept := f(index, in); kept != nil {
				return rf.Step(result, kept)
			}
			return result, nil
		}, nil)
	}
}

// Replace returns a transducer substituting the elements found in the
// replacement table and passing the others through.
func Replace(replacements map[any]any) Transducer {
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			if hashable(input) {
				if replacement, ok := replacements[input]; ok {
					return rf.Step(result, replacement)
				}
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// Tap returns a transducer invoking fn with the accumulator and each element
// before stepping the element through unchanged. It is meant for observation
// and side effects.
func Tap(fn func(result, input any)) Transducer {
	if fn == nil {
		panic("transduce.Tap: fn is nil")
	}
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			fn(result, input)
			return rf.Step(result, input)
		}, nil)
	}
}

// Log returns a transducer recording every element through the logger at
// verbosity 1, without altering the flow.
func Log(logger logr.Logger) Transducer {
	return Tap(func(_, input any) {
		logger.V(1).Info("element", "value", input)
	})
}

// Compact returns a transducer dropping elements that carry no value: nil,
// false, zero numbers and empty strings.
func Compact() Transducer {
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			if !truthy(input) {
				return result, nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}
