package transduce

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// cast converts an untyped element to the type a user callback expects,
// failing the reduction with ErrInvalid when the element does not fit.
func cast[T any](input any) (T, error) {
	var zero T
	if input == nil {
		t := reflect.TypeOf(zero)
		if t == nil || nilable(t) {
			return zero, nil
		}
		return zero, commonerrors.Newf(commonerrors.ErrInvalid, "a nil element cannot be handled as `%v`", reflect.TypeFor[T]())
	}
	value, ok := input.(T)
	if !ok {
		return zero, commonerrors.Newf(commonerrors.ErrInvalid, "element [%v] of type `%T` cannot be handled as `%v`", input, input, reflect.TypeFor[T]())
	}
	return value, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// identical reports identity-style equality between elements: values of the
// same comparable type compare with ==, anything else is never identical.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// hashable states whether an element can index a map.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// truthy states whether an element carries a value: nil, false, zero numbers
// and empty strings do not.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	default:
		return true
	}
}

// text renders an element in its textual form.
func text(input any) string {
	switch in := input.(type) {
	case string:
		return in
	case []byte:
		return string(in)
	case rune:
		return string(in)
	case byte:
		return string([]byte{in})
	default:
		return fmt.Sprint(in)
	}
}

// binary renders an element in its byte form.
func binary(input any) []byte {
	switch in := input.(type) {
	case []byte:
		return in
	case string:
		return []byte(in)
	case byte:
		return []byte{in}
	case rune:
		return utf8.AppendRune(nil, in)
	default:
		return []byte(fmt.Sprint(in))
	}
}
