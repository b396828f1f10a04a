package transduce

import (
	"math/rand/v2"

	mapset "github.com/deckarep/golang-set/v2"
)

//
// Stateful transducers
//
// Buffers and markers are allocated inside the application function, so each
// application of the transducer reduces independently.
//

// Partition returns a transducer grouping consecutive elements into slices of
// size n, emitting each group once full. A trailing partial group is emitted
// on completion. Each emitted group owns its backing array.
func Partition(n int) Transducer {
	if n < 1 {
		panic("transduce.Partition: size must be positive")
	}
	return func(rf Reducer) Reducer {
		buffer := make([]any, 0, n)
		return wrap(rf, func(result, input any) (any, error) {
			buffer = append(buffer, input)
			if len(buffer) < n {
				return result, nil
			}
			group := buffer
			buffer = make([]any, 0, n)
			return rf.Step(result, group)
		}, func(result any) (any, error) {
			return flushGroup(rf, &buffer, result)
		})
	}
}

// PartitionBy returns a transducer grouping consecutive elements for which f
// returns the same value, starting a new group at every change. The final
// group is emitted on completion.
func PartitionBy[I any](f func(I) any) Transducer {
	if f == nil {
		panic("transduce.PartitionBy: f is nil")
	}
	return func(rf Reducer) Reducer {
		var buffer []any
		var mark any
		return wrap(rf, func(result, input any) (any, error) {
			in, err := cast[I](input)
			if err != nil {
				return result, err
			}
			key := f(in)
			if len(buffer) == 0 || identical(key, mark) {
				mark = key
				buffer = append(buffer, input)
				return result, nil
			}
			group := buffer
			buffer = nil
			mark = key
			result, err = rf.Step(result, group)
			if err != nil {
				return result, err
			}
			// The element that opened the new group is only buffered when the
			// reduction goes on, so a terminated reduction does not flush a
			// phantom group on completion.
			if !IsReduced(result) {
				buffer = []any{input}
			}
			return result, nil
		}, func(result any) (any, error) {
			return flushGroup(rf, &buffer, result)
		})
	}
}

// flushGroup steps the pending group if any, then completes. A termination
// signal raised by the flushing step is unwrapped so Complete receives a bare
// accumulator.
func flushGroup(rf Reducer, buffer *[]any, result any) (any, error) {
	if len(*buffer) > 0 {
		group := *buffer
		*buffer = nil
		var err error
		result, err = rf.Step(result, group)
		if err != nil {
			return result, err
		}
		result = Unreduced(result)
	}
	return rf.Complete(result)
}

// Dedupe returns a transducer dropping consecutive duplicate elements.
// Elements of uncomparable types are never considered duplicates.
func Dedupe() Transducer {
	return func(rf Reducer) Reducer {
		var previous any
		seen := false
		return wrap(rf, func(result, input any) (any, error) {
			if seen && identical(previous, input) {
				return result, nil
			}
			previous = input
			seen = true
			return rf.Step(result, input)
		}, nil)
	}
}

// Distinct returns a transducer dropping every element already encountered
// during the reduction, whatever its position. Elements of uncomparable
// types always pass through.
func Distinct() Transducer {
	return func(rf Reducer) Reducer {
		seen := mapset.NewSet[any]()
		return wrap(rf, func(result, input any) (any, error) {
			if !hashable(input) {
				return rf.Step(result, input)
			}
			if seen.Contains(input) {
				return result, nil
			}
			seen.Add(input)
			return rf.Step(result, input)
		}, nil)
	}
}

// Interpose returns a transducer stepping the separator between consecutive
// elements. A termination signal raised by the separator step propagates
// without stepping the pending element.
func Interpose(separator any) Transducer {
	return func(rf Reducer) Reducer {
		started := false
		return wrap(rf, func(result, input any) (any, error) {
			if !started {
				started = true
				return rf.Step(result, input)
			}
			result, err := rf.Step(result, separator)
			if err != nil || IsReduced(result) {
				return result, err
			}
			return rf.Step(result, input)
		}, nil)
	}
}

// RandomSample returns a transducer keeping each element with the given
// probability. A probability of 1 or more keeps everything, 0 or less drops
// everything.
func RandomSample(probability float64) Transducer {
	return func(rf Reducer) Reducer {
		return wrap(rf, func(result, input any) (any, error) {
			if rand.Float64() >= probability {
				return result, nil
			}
			return rf.Step(result, input)
		}, nil)
	}
}
