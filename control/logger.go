// control/logger.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger writing to w at level. format is
// LogFormatText or LogFormatJSON.
func NewLogger(w io.Writer, level logrus.Level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if format == LogFormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
