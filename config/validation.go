package config

import (
	"fmt"
	"reflect"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// ValidateEmbedded finds embedded configuration structures and validates
// them, tying any failure to the field holding the faulty structure.
func ValidateEmbedded(cfg Validator) error {
	r := reflect.ValueOf(cfg).Elem()
	for i := 0; i < r.NumField(); i++ {
		f := r.Field(i)
		if f.Kind() != reflect.Struct {
			continue
		}
		validator, ok := f.Addr().Interface().(Validator)
		if !ok {
			continue
		}
		if err := wrapFieldValidationError(r.Type().Field(i), validator.Validate()); err != nil {
			return err
		}
	}
	return nil
}

func wrapFieldValidationError(field reflect.StructField, err error) error {
	if err == nil {
		return nil
	}
	name := field.Name
	if tag, ok := field.Tag.Lookup("mapstructure"); ok {
		name = fmt.Sprintf("%v (%v)", field.Name, tag)
	}
	return commonerrors.WrapErrorf(commonerrors.ErrInvalid, err, "field %v failed validation", name)
}
