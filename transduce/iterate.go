package transduce

import (
	"iter"

	"go.uber.org/atomic"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/queue"
)

// Iterate lazily applies the transducer to the source: one source element is
// pulled at a time and the outputs it produced are yielded before the next
// pull, so infinite sources can be consumed. When the source is exhausted or
// the transformation terminates the reduction, Complete runs once and any
// trailing output (a partial partition, a pending segment) is yielded before
// the sequence ends.
//
// The returned sequence is single use: a second range yields ErrConflict.
// Abandoning the range stops the source pull without running Complete.
func Iterate(xf Transducer, source iter.Seq[any]) iter.Seq2[any, error] {
	consumed := atomic.NewBool(false)
	return func(yield func(any, error) bool) {
		if xf == nil {
			yield(nil, commonerrors.UndefinedParameter("no transducer provided"))
			return
		}
		if source == nil {
			yield(nil, commonerrors.UndefinedParameter("no source provided"))
			return
		}
		if !consumed.CompareAndSwap(false, true) {
			yield(nil, commonerrors.New(commonerrors.ErrConflict, "the sequence was already consumed"))
			return
		}

		pending := queue.NewQueue[any]()
		rf := xf(collectingReducer(pending))
		next, stop := iter.Pull(source)
		defer stop()

		serve := func() bool {
			for {
				out, ok := pending.Dequeue()
				if !ok {
					return true
				}
				if !yield(out, nil) {
					return false
				}
			}
		}

		result := rf.Init()
		for {
			if !serve() {
				return
			}
			input, ok := next()
			if !ok {
				break
			}
			var err error
			result, err = rf.Step(result, input)
			if err != nil {
				yield(nil, err)
				return
			}
			if IsReduced(result) {
				break
			}
		}
		if _, err := rf.Complete(Unreduced(result)); err != nil {
			yield(nil, err)
			return
		}
		serve()
	}
}

// collectingReducer enqueues every stepped element for later consumption by
// the lazy driver.
func collectingReducer(pending queue.IQueue[any]) Reducer {
	return &reducer{
		init: nilInit,
		step: func(result, input any) (any, error) {
			pending.Enqueue(input)
			return result, nil
		},
		complete: identityComplete,
	}
}
