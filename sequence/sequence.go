// Package sequence normalises heterogeneous data sources into flat sequences
// of elements so that transformations can stay input agnostic.
//
// The supported shapes are in-memory collections (slices, arrays, maps),
// strings, channels, readers and iterator functions. Anything else is
// rejected with commonerrors.ErrUnsupported rather than silently coerced.
package sequence

import (
	"cmp"
	"io"
	"iter"
	"reflect"
	"slices"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// DefaultChunkSize is the size of the byte chunks emitted when iterating over
// an io.Reader.
const DefaultChunkSize = 4096

// Pair associates a key with a value. It is the element shape produced when
// iterating over maps and keyed sequences, and the shape expected by
// map-building sinks.
type Pair struct {
	Key   any
	Value any
}

// From returns a sequence over the elements of source.
//
// The translation depends on the source shape:
//   - iter.Seq[any] is returned as is and iter.Seq2[any, any] yields a Pair
//     per entry,
//   - slices and arrays yield their elements in order,
//   - maps yield a Pair per entry, with keys sorted whenever the key kind is
//     ordered so traversal order is stable,
//   - strings yield their runes,
//   - io.Reader yields byte chunks of at most DefaultChunkSize (single use),
//   - channels yield received values until closed.
//
// A nil source returns ErrUndefined and any other shape returns
// ErrUnsupported.
func From(source any) (iter.Seq[any], error) {
	switch s := source.(type) {
	case nil:
		return nil, commonerrors.New(commonerrors.ErrUndefined, "no source provided")
	case iter.Seq[any]:
		return s, nil
	case iter.Seq2[any, any]:
		return pairSeq(s), nil
	case []any:
		return slices.Values(s), nil
	case string:
		return fromString(s), nil
	case io.Reader:
		return FromReader(s), nil
	}
	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return fromReflectedList(v), nil
	case reflect.Map:
		return fromReflectedMap(v), nil
	case reflect.Chan:
		if v.Type().ChanDir() == reflect.SendDir {
			return nil, commonerrors.New(commonerrors.ErrUnsupported, "cannot receive from a send-only channel")
		}
		return fromReflectedChan(v), nil
	default:
		return nil, commonerrors.Newf(commonerrors.ErrUnsupported, "cannot iterate over `%T`", source)
	}
}

// FromCollection is similar to From but only accepts collection shapes
// (slices, arrays, maps, channels and iterator functions). Strings, readers
// and scalar values report false: they are leaves, not collections. It is the
// test used by flattening transformations to decide whether an element should
// be expanded.
func FromCollection(source any) (iter.Seq[any], bool) {
	switch s := source.(type) {
	case nil:
		return nil, false
	case iter.Seq[any]:
		return s, true
	case iter.Seq2[any, any]:
		return pairSeq(s), true
	case []any:
		return slices.Values(s), true
	case string:
		return nil, false
	case io.Reader:
		return nil, false
	}
	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return fromReflectedList(v), true
	case reflect.Map:
		return fromReflectedMap(v), true
	case reflect.Chan:
		if v.Type().ChanDir() == reflect.SendDir {
			return nil, false
		}
		return fromReflectedChan(v), true
	default:
		return nil, false
	}
}

// FromReader returns a sequence of []byte chunks read from src. The sequence
// is single use and stops at the first read failure; use the stream package
// when read errors must be surfaced.
func FromReader(src io.Reader) iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			// A fresh buffer per read so emitted chunks do not alias.
			buf := make([]byte, DefaultChunkSize)
			n, err := src.Read(buf)
			if n > 0 {
				if !yield(buf[:n]) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}

func pairSeq(s iter.Seq2[any, any]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for k, v := range s {
			if !yield(Pair{Key: k, Value: v}) {
				return
			}
		}
	}
}

func fromString(s string) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

func fromReflectedList(v reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.Index(i).Interface()) {
				return
			}
		}
	}
}

func fromReflectedMap(v reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		keys := v.MapKeys()
		sortKeys(keys)
		for _, k := range keys {
			if !yield(Pair{Key: k.Interface(), Value: v.MapIndex(k).Interface()}) {
				return
			}
		}
	}
}

func fromReflectedChan(v reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			e, ok := v.Recv()
			if !ok {
				return
			}
			if !yield(e.Interface()) {
				return
			}
		}
	}
}

// sortKeys orders map keys when their kind is ordered so that map traversal
// is deterministic. Interface keys are unwrapped and sorted by their concrete
// value when all of them share one ordered kind; anything else is left in
// reflection order.
func sortKeys(keys []reflect.Value) {
	if len(keys) < 2 {
		return
	}
	unwrap := func(v reflect.Value) reflect.Value {
		if v.Kind() == reflect.Interface {
			return v.Elem()
		}
		return v
	}
	kind := reflect.Invalid
	for i := range keys {
		u := unwrap(keys[i])
		if !u.IsValid() {
			return
		}
		if i == 0 {
			kind = u.Kind()
		} else if u.Kind() != kind {
			return
		}
	}
	switch kind {
	case reflect.String:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(unwrap(a).String(), unwrap(b).String())
		})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(unwrap(a).Int(), unwrap(b).Int())
		})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(unwrap(a).Uint(), unwrap(b).Uint())
		})
	case reflect.Float32, reflect.Float64:
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(unwrap(a).Float(), unwrap(b).Float())
		})
	}
}
