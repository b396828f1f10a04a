// Package reflection provides the few reflective value inspections the
// configuration layer relies on.
package reflection

import (
	"reflect"
	"strings"
)

// IsEmpty states whether a value carries anything: nil, blank strings, zero
// numbers, false, empty collections and nil pointers are all considered
// empty. Pointers and interfaces are followed to the value they hold.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem().Interface())
	case reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
