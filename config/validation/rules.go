// Package validation provides ozzo-validation rules for configuration
// entries specific to filtering pipelines.
package validation

import (
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

var foldOperators = []string{"+", "-", "*", "/", "."}

// IsFoldOperator validates that a configuration entry names a supported
// folding operator. Empty entries are considered valid; combine with
// validation.Required to disallow them.
func IsFoldOperator() validation.Rule {
	return validation.By(func(vRaw any) (err error) {
		val := reflect.ValueOf(vRaw)
		if val.Kind() != reflect.String {
			return commonerrors.Newf(commonerrors.ErrMarshalling, "unsupported type for operator validation: %T", vRaw)
		}
		symbol := val.String()
		if symbol == "" {
			return
		}
		for i := range foldOperators {
			if symbol == foldOperators[i] {
				return
			}
		}
		return commonerrors.Newf(commonerrors.ErrInvalid, "unknown operator `%v`", symbol)
	})
}
