// Package config loads configuration structures from the environment,
// optional .env files and command line flags, with defaults merged in, the
// way twelve-factor tools expect it.
package config

// IServiceConfiguration defines a configuration structure able to validate
// its own entries.
type IServiceConfiguration interface {
	// Validate validates configuration entries.
	Validate() error
}

// Validator is the validation facet of a configuration structure. Embedded
// configurations only need this to take part in ValidateEmbedded.
type Validator interface {
	Validate() error
}
