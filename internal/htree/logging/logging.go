// Package logging builds the logrus logger used for diagnostics. Reports
// meant for the user go to stdout and do not pass through here.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing text lines to w. Verbose enables debug
// output; otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
