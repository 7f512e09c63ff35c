package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Fields carries structured context for a log line.
type Fields map[string]interface{}

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func withFields(ev *zerolog.Event, fields Fields) *zerolog.Event {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	return ev
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	withFields(logger.Info(), fields).Msg(msg)
}

// Error logs an error message and includes the error in the fields.
func Error(msg string, err error, fields Fields) {
	withFields(logger.Error().Err(err), fields).Msg(msg)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	withFields(logger.Fatal().Err(err), fields).Msg(msg)
}
