// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a new zerolog.Logger for the application. Debug output is
// suppressed when production is set.
func New(serviceName string, production bool) zerolog.Logger {
	level := zerolog.DebugLevel
	if production {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
