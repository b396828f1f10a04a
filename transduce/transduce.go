// Package transduce implements transducers: composable transformations of
// reducing operations that stay independent from the data they are applied
// to.
//
// A Reducer describes how results are built (Init), grown (Step) and
// finalised (Complete). A Transducer decorates a Reducer with extra
// behaviour, so that the same transformation can feed a slice, a map, a
// string, a writer or a lazy sequence without changing. Transformations are
// chained with Compose and applied with Transduce, Into, the To* helpers or
// Iterate; a reduction stops early when a step wraps its accumulator with
// NewReduced.
//
// Transducer values are reusable: every application allocates fresh state, so
// the same pipeline can safely drive any number of reductions.
package transduce

import (
	"iter"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// Transducer transforms a reducer into another reducer layering extra
// behaviour over it.
type Transducer func(Reducer) Reducer

// Identity returns the transducer that leaves the reducer untouched.
func Identity() Transducer {
	return func(rf Reducer) Reducer { return rf }
}

// Compose combines transducers into one, applying them to the reducer from
// right to left so that data flows through the transducers in argument
// order: Compose(a, b, c) hands every element to a first. Composing nothing
// returns the identity transducer.
func Compose(transducers ...Transducer) Transducer {
	for i := range transducers {
		if transducers[i] == nil {
			panic("transduce.Compose: transducer is nil")
		}
	}
	return func(rf Reducer) Reducer {
		for i := len(transducers) - 1; i >= 0; i-- {
			rf = transducers[i](rf)
		}
		return rf
	}
}

// Reduce folds the sequence into an accumulator seeded with initial, using
// the reducer's step only. The fold stops as soon as a step returns an error
// or terminates the reduction, in which case the unwrapped accumulator is
// returned and the step is never invoked again. Complete is not called:
// callers needing the full three-stage contract should use Transduce.
func Reduce(rf Reducer, initial any, source iter.Seq[any]) (any, error) {
	if rf == nil {
		return nil, commonerrors.UndefinedParameter("no reducer provided")
	}
	if source == nil {
		return nil, commonerrors.UndefinedParameter("no source provided")
	}
	result, err := fold(rf.Step, initial, source)
	if err != nil {
		return result, err
	}
	return Unreduced(result), nil
}

// Transduce applies the transducer to the reducer and folds the sequence
// through the resulting reduction, seeding the accumulator from its Init and
// finalising it with its Complete.
func Transduce(xf Transducer, rf Reducer, source iter.Seq[any]) (any, error) {
	composed, err := apply(xf, rf, source)
	if err != nil {
		return nil, err
	}
	return run(composed, composed.Init(), source)
}

// TransduceWithInitial is similar to Transduce but seeds the accumulator with
// the provided value instead of the reducer's Init.
func TransduceWithInitial(xf Transducer, rf Reducer, initial any, source iter.Seq[any]) (any, error) {
	composed, err := apply(xf, rf, source)
	if err != nil {
		return nil, err
	}
	return run(composed, initial, source)
}

func apply(xf Transducer, rf Reducer, source iter.Seq[any]) (Reducer, error) {
	if xf == nil {
		return nil, commonerrors.UndefinedParameter("no transducer provided")
	}
	if rf == nil {
		return nil, commonerrors.UndefinedParameter("no reducer provided")
	}
	if source == nil {
		return nil, commonerrors.UndefinedParameter("no source provided")
	}
	return xf(rf), nil
}

// run drives a full reduction: fold, unwrap, then complete exactly once.
func run(rf Reducer, initial any, source iter.Seq[any]) (any, error) {
	result, err := fold(rf.Step, initial, source)
	if err != nil {
		return nil, err
	}
	return rf.Complete(Unreduced(result))
}

// fold is the raw folding loop shared by the drivers and the flattening
// transducers: it stops on the first error or termination signal and returns
// the accumulator with the signal still boxed, so that nested folds can
// propagate it outward intact.
func fold(step StepFunc, initial any, source iter.Seq[any]) (any, error) {
	result := initial
	var err error
	for input := range source {
		result, err = step(result, input)
		if err != nil {
			return result, err
		}
		if IsReduced(result) {
			return result, nil
		}
	}
	return result, nil
}
