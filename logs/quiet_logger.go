package logs

import (
	"github.com/go-logr/logr"
)

// quietLogger is a LogSink silencing every informational message while still
// forwarding errors to the underlying logger, names and values included.
type quietLogger struct {
	logger logr.Logger
}

func (l *quietLogger) Init(_ logr.RuntimeInfo) {
	// ignored.
}

func (l *quietLogger) Enabled(int) bool {
	return false
}

func (l *quietLogger) Info(_ int, _ string, _ ...any) {
	// Ignored.
}

func (l *quietLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(err, msg, keysAndValues...)
}

func (l *quietLogger) WithValues(keysAndValues ...any) logr.LogSink {
	return &quietLogger{logger: l.logger.WithValues(keysAndValues...)}
}

func (l *quietLogger) WithName(name string) logr.LogSink {
	return &quietLogger{logger: l.logger.WithName(name)}
}

// NewQuietLogger returns a quiet logger which only logs errors.
func NewQuietLogger(logger logr.Logger) logr.Logger {
	return logr.New(&quietLogger{logger: logger})
}
