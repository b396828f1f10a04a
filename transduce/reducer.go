package transduce

import (
	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// InitFunc produces the initial accumulator of a reduction.
type InitFunc func() any

// StepFunc folds one input into the accumulator and returns the new
// accumulator. Returning a *Reduced accumulator terminates the reduction
// early; returning an error aborts it.
type StepFunc func(result, input any) (any, error)

// CompleteFunc finalises the accumulator once the input is exhausted.
type CompleteFunc func(result any) (any, error)

// Reducer describes a reduction in three stages: Init produces the initial
// accumulator, Step folds one input into it and Complete finalises it once
// all input has been consumed. Complete is invoked exactly once per
// reduction, always with an unwrapped accumulator, including when the
// reduction terminated early.
type Reducer interface {
	Init() any
	Step(result, input any) (any, error)
	Complete(result any) (any, error)
}

type reducer struct {
	init     InitFunc
	step     StepFunc
	complete CompleteFunc
}

func (r *reducer) Init() any {
	return r.init()
}

func (r *reducer) Step(result, input any) (any, error) {
	return r.step(result, input)
}

func (r *reducer) Complete(result any) (any, error) {
	return r.complete(result)
}

// NewReducer assembles a Reducer from its three stages. The step function is
// mandatory; a missing init defaults to a nil accumulator and a missing
// complete defaults to identity.
func NewReducer(init InitFunc, step StepFunc, complete CompleteFunc) (Reducer, error) {
	if step == nil {
		return nil, commonerrors.UndefinedParameter("a reduction needs a step function")
	}
	if init == nil {
		init = nilInit
	}
	if complete == nil {
		complete = identityComplete
	}
	return &reducer{init: init, step: step, complete: complete}, nil
}

// Reducing builds a Reducer from a bare step function, with a nil initial
// accumulator and an identity completion.
func Reducing(step StepFunc) (Reducer, error) {
	return NewReducer(nil, step, nil)
}

// Completing builds a Reducer from a step function and a completion stage.
func Completing(step StepFunc, complete CompleteFunc) (Reducer, error) {
	return NewReducer(nil, step, complete)
}

func nilInit() any {
	return nil
}

func identityComplete(result any) (any, error) {
	return result, nil
}

// wrap derives a reducer from next, overriding the step and optionally the
// completion while keeping next's Init. It is how transducers layer their
// logic over the reducer they decorate.
func wrap(next Reducer, step StepFunc, complete CompleteFunc) Reducer {
	if complete == nil {
		complete = next.Complete
	}
	return &reducer{init: next.Init, step: step, complete: complete}
}
