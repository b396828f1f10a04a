package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	rules "github.com/ARM-software/golang-transducers/transducers/config/validation"
)

// FilterConfiguration gathers the tunables of a text filtering pipeline: how
// large a pending segment may grow, what separates emitted elements, and an
// optional folding operator applied to the results.
type FilterConfiguration struct {
	// MaxSegmentLength bounds the bytes buffered while assembling a segment.
	MaxSegmentLength int `mapstructure:"max_segment_length"`
	// Separator is written between emitted elements.
	Separator string `mapstructure:"separator"`
	// Fold optionally folds the emitted elements with an infix operator
	// ("+", "-", "*", "/" or ".") instead of listing them.
	Fold string `mapstructure:"fold"`
	// Verbose turns element-level logging on.
	Verbose bool `mapstructure:"verbose"`
}

func (cfg *FilterConfiguration) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.MaxSegmentLength, validation.Required, validation.Min(1)),
		validation.Field(&cfg.Fold, rules.IsFoldOperator()),
	)
}

// DefaultFilterConfiguration returns the configuration a filtering pipeline
// starts from: newline separated output and a segment bound large enough for
// ordinary text.
func DefaultFilterConfiguration() *FilterConfiguration {
	return &FilterConfiguration{
		MaxSegmentLength: 4096,
		Separator:        "\n",
	}
}
