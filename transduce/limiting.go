package transduce

//
// Limiting transducers
//
// Take and TakeWhile are the canonical early-termination producers: they wrap
// the accumulator with EnsureReduced so the driver stops pulling input, and
// they never step an element past the cut.
//

// Take returns a transducer passing the first n elements through and then
// terminating the reduction. A non-positive n terminates before anything is
// stepped.
func Take(n int) Transducer {
	return func(rf Reducer) Reducer {
		remaining := n
		return wrap(rf, func(result, input any) (any, error) {
			if remaining <= 0 {
				return EnsureReduced(result), nil
			}
			remaining--
			result, err := rf.Step(result, input)
			if err != nil {
				return result, err
			}
			if remaining <= 0 {
				return EnsureReduced(result), nil
			}
			return result, nil
		}, nil)
	}
}

// TakeWhile returns a transducer passing elements through until the predicate
// fails, then terminating the reduction without stepping the failing element.
func TakeWhile[I any](predicate func(I) bool) Transducer {
	if predicate == nil {
		panic("transduce.TakeWhile: predicate is nil")
	}
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			if !predicate(in) {
				return EnsureReduced(result), nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// TakeNth returns a transducer keeping one element in every n, starting with
// the first.
func TakeNth(n int) Transducer {
	if n < 1 {
		panic("transduce.TakeNth: n must be positive")
	}
	return func(rf Reducer) Reducer {
		index := -1
		return wrap(rf, func(result, input any) (any, error) {
			index++
			if index%n != 0 {
				return result, nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// Drop returns a transducer discarding the first n elements.
func Drop(n int) Transducer {
	return func(rf Reducer) Reducer {
		remaining := n
		return wrap(rf, func(result, input any) (any, error) {
			if remaining > 0 {
				remaining--
				return result, nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// DropWhile returns a transducer discarding elements as long as the predicate
// accepts them; from the first rejected element on, everything passes
// through.
func DropWhile[I any](predicate func(I) bool) Transducer {
	if predicate == nil {
		panic("transduce.DropWhile: predicate is nil")
	}
	return func(rf Reducer) Reducer {
		dropping := true
		return wrap(rf, func(result, input any) (any, error) {
			if dropping {
				in, err := cast[I](input)
				if err != nil {
					return result, err
				}
				if predicate(in) {
					return result, nil
				}
				dropping = false
			}
			return rf.Step(result, input)
		}, nil)
	}
}
