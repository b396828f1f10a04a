package transduce

import (
	"io"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
)

//
// Eager entry points
//
// Into and the To* helpers bind together the three moving parts: the source
// is normalised by the sequence package, the target shape selects a built-in
// sink and the transducer runs in between.
//

// Into reduces source through the transducer into the target: slices append,
// maps merge key/value elements, strings grow by concatenation and writers
// receive the byte form of each element. The filled target is returned.
// Target shapes with no matching sink are rejected with ErrUnsupported.
func Into(target any, xf Transducer, source any) (any, error) {
	seq, err := sequence.From(source)
	if err != nil {
		return nil, err
	}
	rf, seed, err := sinkFor(target)
	if err != nil {
		return nil, err
	}
	return TransduceWithInitial(xf, rf, seed, seq)
}

// sinkFor selects the built-in sink and seed accumulator matching a target
// shape.
func sinkFor(target any) (Reducer, any, error) {
	switch t := target.(type) {
	case nil:
		return nil, nil, commonerrors.UndefinedParameter("no target provided")
	case []any:
		return AppendReducer(), t, nil
	case map[any]any:
		return AssocReducer(), t, nil
	case string:
		return JoinReducer(""), t, nil
	case io.Writer:
		return WriterReducer(t), t, nil
	default:
		return nil, nil, commonerrors.Newf(commonerrors.ErrUnsupported, "cannot reduce into `%T`", target)
	}
}

// ToSlice reduces source through the transducer into a fresh slice.
func ToSlice(xf Transducer, source any) ([]any, error) {
	result, err := Into([]any{}, xf, source)
	if err != nil {
		return nil, err
	}
	return cast[[]any](result)
}

// ToMap reduces source through the transducer into a fresh map. The
// transformed elements must carry key/value pairs, as for AssocReducer.
func ToMap(xf Transducer, source any) (map[any]any, error) {
	result, err := Into(map[any]any{}, xf, source)
	if err != nil {
		return nil, err
	}
	return cast[map[any]any](result)
}

// ToString reduces source through the transducer into a string concatenating
// the textual form of the transformed elements.
func ToString(xf Transducer, source any) (string, error) {
	result, err := Into("", xf, source)
	if err != nil {
		return "", err
	}
	return cast[string](result)
}

// Collect reduces source through the transducer into a typed slice. A
// transformed element that does not fit T fails with ErrInvalid.
func Collect[T any](xf Transducer, source any) ([]T, error) {
	elements, err := ToSlice(xf, source)
	if err != nil {
		return nil, err
	}
	collected := make([]T, 0, len(elements))
	for i := range elements {
		value, err := cast[T](elements[i])
		if err != nil {
			return nil, err
		}
		collected = append(collected, value)
	}
	return collected, nil
}
