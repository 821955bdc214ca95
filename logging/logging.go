// Package logging provides the single shared logger used across the
// simulation core, following the same package-level-logger pattern InMAP
// uses for its own diagnostic output.
package logging

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the core's logger. Front-ends that want their own
// formatting or output destination call this once at startup.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		log = l
	}
}

// Log returns the currently configured logger.
func Log() logrus.FieldLogger {
	return log
}
