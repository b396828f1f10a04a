package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
)

func TestIsFoldOperator(t *testing.T) {
	rule := IsFoldOperator()

	for _, symbol := range []string{"", "+", "-", "*", "/", "."} {
		assert.NoError(t, rule.Validate(symbol), "expected `%v` to be accepted", symbol)
	}

	errortest.AssertError(t, rule.Validate("%"), commonerrors.ErrInvalid)
	errortest.AssertError(t, rule.Validate("++"), commonerrors.ErrInvalid)
	errortest.AssertError(t, rule.Validate(42), commonerrors.ErrMarshalling)
}
