// Package logs defines logr (https://github.com/go-logr/logr) constructors for
// use in command line tools and tests.
package logs

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

const (
	syncError = "invalid argument" // sync error can happen on Linux (sync /dev/stderr: invalid argument) see https://github.com/uber-go/zap/issues/328
)

// NewZapLogger returns a logger which uses zap logger (https://github.com/uber-go/zap)
// alongside a flush function to call before the program exits.
func NewZapLogger(zapL *zap.Logger) (logger logr.Logger, flush func() error, err error) {
	if zapL == nil {
		err = commonerrors.UndefinedParameter("no zap logger")
		return
	}
	logger = zapr.NewLogger(zapL)
	flush = func() error {
		err := zapL.Sync()
		// handling this error https://github.com/uber-go/zap/issues/328
		if commonerrors.CorrespondTo(err, syncError) {
			return nil
		}
		return err
	}
	return
}

// NewWriterLogr returns a logger printing to the writer `w`.
// See https://github.com/go-logr/logr/blob/ff91da8dc418a9e36998931ed4ab10b71833a368/example_test.go#L27
func NewWriterLogr(w io.Writer) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
		} else {
			_, _ = fmt.Fprintln(w, args)
		}
	}, funcr.Options{})
}

// NewNoopLogger returns a logger discarding every message.
func NewNoopLogger() logr.Logger {
	return logr.Discard()
}
