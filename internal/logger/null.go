package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewNullLogger returns a logger that discards all output. Intended
// for tests that need a Logger but do not care about log content.
func NewNullLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewLogrusAdapter(logrus.NewEntry(l))
}
