// Package commonerrors defines the error taxonomy used across the module.
//
// Errors are classified by wrapping one of the sentinel errors below using
// `fmt.Errorf("%w: ...", err)` or the helpers in this package, so that callers
// can test the class of a failure with errors.Is or Any/None without depending
// on error strings.
package commonerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrUndefined      = errors.New("undefined")
	ErrInvalid        = errors.New("invalid")
	ErrUnsupported    = errors.New("unsupported")
	ErrUnknown        = errors.New("unknown")
	ErrUnexpected     = errors.New("unexpected")
	ErrNotFound       = errors.New("not found")
	ErrEmpty          = errors.New("empty")
	ErrTooLarge       = errors.New("too large")
	ErrEOF            = errors.New("end of file")
	ErrTimeout        = errors.New("timeout")
	ErrCancelled      = errors.New("cancelled")
	ErrConflict       = errors.New("conflict")
	ErrMarshalling    = errors.New("unserialisable")
	ErrCondition      = errors.New("failed condition")
)

// Any determines whether the target error is one of the errors `err`.
func Any(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return true
		}
	}
	return false
}

// None determines whether the target error is none of the errors `err`.
func None(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return false
		}
	}
	return true
}

// CorrespondTo determines whether the target error matches or contains one of
// the descriptions, ignoring case.
func CorrespondTo(target error, description ...string) bool {
	if target == nil {
		return false
	}
	desc := strings.ToLower(target.Error())
	for i := range description {
		d := strings.ToLower(description[i])
		if desc == d || strings.Contains(desc, d) {
			return true
		}
	}
	return false
}

// New returns an error of type `baseError` qualified with a reason.
func New(baseError error, reason string) error {
	return fmt.Errorf("%w: %v", baseError, reason)
}

// Newf returns an error of type `baseError` qualified with a formatted reason.
func Newf(baseError error, format string, args ...any) error {
	return fmt.Errorf("%w: %v", baseError, fmt.Sprintf(format, args...))
}

// WrapError wraps the error `wrapped` into an error of type `newType`, keeping
// the original description. If `wrapped` is already of that type and no
// message is supplied, it is returned unchanged.
func WrapError(newType, wrapped error, message string) error {
	if wrapped == nil {
		return New(newType, message)
	}
	if message == "" {
		if Any(wrapped, newType) {
			return wrapped
		}
		return fmt.Errorf("%w: %v", newType, wrapped.Error())
	}
	return fmt.Errorf("%w: %v: %v", newType, message, wrapped.Error())
}

// WrapErrorf is similar to WrapError but with a formatted message.
func WrapErrorf(newType, wrapped error, format string, args ...any) error {
	return WrapError(newType, wrapped, fmt.Sprintf(format, args...))
}

// WrapIfNotError is similar to WrapError but always leaves an error already
// of type `newType` untouched, whether or not a message is supplied.
func WrapIfNotError(newType, wrapped error, message string) error {
	if wrapped != nil && Any(wrapped, newType) {
		return wrapped
	}
	return WrapError(newType, wrapped, message)
}

// UndefinedVariable returns an ErrUndefined error about the named variable.
func UndefinedVariable(variableName string) error {
	return Newf(ErrUndefined, "undefined variable `%v`", variableName)
}

// UndefinedParameter returns an ErrUndefined error with the provided reason.
func UndefinedParameter(reason string) error {
	return New(ErrUndefined, reason)
}

// Ignore returns nil if the target error is one of the errors to ignore, or
// the target error otherwise.
func Ignore(target error, ignore ...error) error {
	if Any(target, ignore...) {
		return nil
	}
	return target
}

// Join aggregates errors into a single error, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ConvertContextError converts a context error into its common error
// counterpart (ErrCancelled, ErrTimeout). Other errors are left untouched.
func ConvertContextError(err error) error {
	if err == nil {
		return nil
	}
	if Any(err, ErrCancelled, ErrTimeout) {
		return err
	}
	if Any(err, context.Canceled) {
		return WrapError(ErrCancelled, err, "")
	}
	if Any(err, context.DeadlineExceeded) {
		return WrapError(ErrTimeout, err, "")
	}
	return err
}

// DetermineContextError determines whether the context is done and returns the
// corresponding common error if so.
func DetermineContextError(ctx context.Context) error {
	return ConvertContextError(ctx.Err())
}
