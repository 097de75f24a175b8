// Package logging configures the process-wide zerolog logger used by the
// evaluation commands.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up console logging on stderr. Debug mode also surfaces the
// per-event tracing emitted while an agent run is drained.
func Init(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// CaseLogger returns a logger scoped to one evaluation case.
func CaseLogger(caseID string) zerolog.Logger {
	return log.With().Str("case", caseID).Logger()
}
