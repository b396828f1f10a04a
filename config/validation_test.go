package config

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
)

type leafConfiguration struct {
	Value string `mapstructure:"value"`
}

func (cfg *leafConfiguration) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Value, validation.Required),
	)
}

type holderConfiguration struct {
	Leaf leafConfiguration `mapstructure:"leaf"`
}

func (cfg *holderConfiguration) Validate() error {
	return ValidateEmbedded(cfg)
}

func TestValidateEmbedded(t *testing.T) {
	valid := &holderConfiguration{Leaf: leafConfiguration{Value: "set"}}
	require.NoError(t, valid.Validate())

	invalid := &holderConfiguration{}
	err := invalid.Validate()
	errortest.AssertError(t, err, commonerrors.ErrInvalid)
	assert.Contains(t, err.Error(), "Leaf (leaf)", "the failure names the faulty field")
}
