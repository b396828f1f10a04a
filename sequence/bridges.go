package sequence

import (
	"cmp"
	"iter"
	"slices"

	"golang.org/x/exp/maps"
)

//
// Typed bridges
//
// The helpers below lift typed Go values into the untyped element sequences
// the drivers consume, without going through reflection.
//

// Of returns a sequence over the provided values.
func Of(values ...any) iter.Seq[any] {
	return slices.Values(values)
}

// FromSlice returns a sequence over the elements of a typed slice.
func FromSlice[T any](s []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range s {
			if !yield(s[i]) {
				return
			}
		}
	}
}

// FromSeq erases the element type of a typed sequence.
func FromSeq[T any](s iter.Seq[T]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// FromSeq2 turns a typed key/value sequence into a sequence of Pair elements.
func FromSeq2[K, V any](s iter.Seq2[K, V]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for k, v := range s {
			if !yield(Pair{Key: k, Value: v}) {
				return
			}
		}
	}
}

// FromMap returns a sequence of Pair elements over a typed map, with keys in
// ascending order.
func FromMap[K cmp.Ordered, V any](m map[K]V) iter.Seq[any] {
	return func(yield func(any) bool) {
		keys := maps.Keys(m)
		slices.Sort(keys)
		for _, k := range keys {
			if !yield(Pair{Key: k, Value: m[k]}) {
				return
			}
		}
	}
}

// FromChan returns a sequence over values received from a typed channel until
// it is closed.
func FromChan[T any](c <-chan T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range c {
			if !yield(v) {
				return
			}
		}
	}
}
