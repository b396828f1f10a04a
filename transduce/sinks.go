package transduce

import (
	"bytes"
	"io"
	"strings"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
)

//
// Built-in sinks
//
// Sinks are plain Reducers: they terminate a transformation by giving the
// stepped elements a destination. State lives in the accumulator, never in
// the sink value, so one sink can drive many reductions.
//

// AppendReducer returns a reducer collecting stepped elements into a slice.
func AppendReducer() Reducer {
	return &reducer{
		init: func() any { return []any{} },
		step: func(result, input any) (any, error) {
			slice, err := cast[[]any](result)
			if err != nil {
				return result, err
			}
			return append(slice, input), nil
		},
		complete: identityComplete,
	}
}

// AssocReducer returns a reducer merging key/value elements into a map. An
// element may be a sequence.Pair or a slice holding at least a key and a
// value; anything else fails the reduction with ErrInvalid.
func AssocReducer() Reducer {
	return &reducer{
		init: func() any { return map[any]any{} },
		step: func(result, input any) (any, error) {
			m, err := cast[map[any]any](result)
			if err != nil {
				return result, err
			}
			key, value, err := keyValue(input)
			if err != nil {
				return result, err
			}
			m[key] = value
			return m, nil
		},
		complete: identityComplete,
	}
}

// keyValue extracts the key/value pair carried by an element.
func keyValue(input any) (key, value any, err error) {
	switch in := input.(type) {
	case sequence.Pair:
		key, value = in.Key, in.Value
	case []any:
		if len(in) < 2 {
			err = commonerrors.Newf(commonerrors.ErrInvalid, "element [%v] is too short to carry a key and a value", input)
			return
		}
		key, value = in[0], in[1]
	default:
		err = commonerrors.Newf(commonerrors.ErrInvalid, "element [%v] of type `%T` does not carry a key/value pair", input, input)
		return
	}
	if !hashable(key) {
		err = commonerrors.Newf(commonerrors.ErrInvalid, "key of type `%T` cannot index a map", key)
	}
	return
}

// joinAccumulator carries the state of a string-building reduction. The
// element count is tracked separately from the builder so empty string
// elements still receive separators.
type joinAccumulator struct {
	builder strings.Builder
	count   int
}

// JoinReducer returns a reducer concatenating the textual form of stepped
// elements, with sep between consecutive elements. Complete returns the
// built string.
func JoinReducer(sep string) Reducer {
	return &reducer{
		init: func() any { return &joinAccumulator{} },
		step: func(result, input any) (any, error) {
			acc, err := toJoinAccumulator(result)
			if err != nil {
				return result, err
			}
			if acc.count > 0 && sep != "" {
				acc.builder.WriteString(sep)
			}
			acc.builder.WriteString(text(input))
			acc.count++
			return acc, nil
		},
		complete: func(result any) (any, error) {
			acc, err := toJoinAccumulator(result)
			if err != nil {
				return result, err
			}
			return acc.builder.String(), nil
		},
	}
}

// toJoinAccumulator normalises the accumulator of a string-building
// reduction: a string seeds the builder as a prefix and nil starts empty.
func toJoinAccumulator(result any) (*joinAccumulator, error) {
	switch r := result.(type) {
	case *joinAccumulator:
		return r, nil
	case nil:
		return &joinAccumulator{}, nil
	case string:
		acc := &joinAccumulator{}
		acc.builder.WriteString(r)
		if r != "" {
			acc.count = 1
		}
		return acc, nil
	default:
		return nil, commonerrors.Newf(commonerrors.ErrInvalid, "accumulator of type `%T` cannot build a string", result)
	}
}

// WriterReducer returns a reducer writing the byte form of stepped elements
// to w. The writer itself is the accumulator and write errors abort the
// reduction.
func WriterReducer(w io.Writer) Reducer {
	return &reducer{
		init: func() any { return w },
		step: func(result, input any) (any, error) {
			if _, err := w.Write(binary(input)); err != nil {
				return result, err
			}
			return result, nil
		},
		complete: identityComplete,
	}
}

// BufferReducer returns a reducer accumulating the byte form of stepped
// elements into a bytes.Buffer created at Init. The buffer is handed back as
// is on completion: bytes already consumed from it are not rewound.
func BufferReducer() Reducer {
	return &reducer{
		init: func() any { return &bytes.Buffer{} },
		step: func(result, input any) (any, error) {
			buffer, err := cast[*bytes.Buffer](result)
			if err != nil {
				return result, err
			}
			buffer.Write(binary(input))
			return buffer, nil
		},
		complete: identityComplete,
	}
}

// OperatorReducer returns a reducer folding elements with an infix operator:
// "+", "-", "*" and "/" fold numerically and "." concatenates text. Unknown
// symbols are rejected at construction with ErrUnsupported.
//
// Numbers fold in int64 until a floating point element widens the
// accumulator to float64. With no explicit initial accumulator the first
// element seeds the fold, so an empty reduction yields nil.
func OperatorReducer(operator string) (Reducer, error) {
	switch operator {
	case "+", "-", "*", "/":
		return arithmeticReducer(operator), nil
	case ".":
		return JoinReducer(""), nil
	default:
		return nil, commonerrors.Newf(commonerrors.ErrUnsupported, "unknown operator `%v`", operator)
	}
}

func arithmeticReducer(operator string) Reducer {
	return &reducer{
		init: nilInit,
		step: func(result, input any) (any, error) {
			value, err := toNumber(input)
			if err != nil {
				return result, err
			}
			if result == nil {
				return value.boxed(), nil
			}
			acc, err := toNumber(result)
			if err != nil {
				return result, err
			}
			return applyOperator(operator, acc, value)
		},
		complete: identityComplete,
	}
}

type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) boxed() any {
	if n.isFloat {
		return n.f
	}
	return n.i
}

func (n number) widened() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func toNumber(v any) (n number, err error) {
	switch x := v.(type) {
	case int:
		n.i = int64(x)
	case int8:
		n.i = int64(x)
	case int16:
		n.i = int64(x)
	case int32:
		n.i = int64(x)
	case int64:
		n.i = x
	case uint:
		n.i = int64(x)
	case uint8:
		n.i = int64(x)
	case uint16:
		n.i = int64(x)
	case uint32:
		n.i = int64(x)
	case uint64:
		n.i = int64(x)
	case float32:
		n.f = float64(x)
		n.isFloat = true
	case float64:
		n.f = x
		n.isFloat = true
	default:
		err = commonerrors.Newf(commonerrors.ErrInvalid, "element [%v] of type `%T` is not a number", v, v)
	}
	return
}

func applyOperator(operator string, acc, value number) (any, error) {
	if acc.isFloat || value.isFloat {
		a, b := acc.widened(), value.widened()
		switch operator {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			return a / b, nil
		}
	} else {
		switch operator {
		case "+":
			return acc.i + value.i, nil
		case "-":
			return acc.i - value.i, nil
		case "*":
			return acc.i * value.i, nil
		case "/":
			if value.i == 0 {
				return nil, commonerrors.New(commonerrors.ErrInvalid, "integer division by zero")
			}
			return acc.i / value.i, nil
		}
	}
	return nil, commonerrors.Newf(commonerrors.ErrUnsupported, "unknown operator `%v`", operator)
}
