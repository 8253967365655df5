package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// New creates a JSON logger, or a console logger in development.
func New(serviceName string, environment string) *Logger {
	var output io.Writer = os.Stdout
	if environment == "development" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(serviceName, output)
}

// NewWithWriter builds a logger that writes to w. Tests pass a buffer or io.Discard.
func NewWithWriter(serviceName string, w io.Writer) *Logger {
	l := zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &Logger{Logger: l}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithRequestID attaches the request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("request_id", requestID).Logger()}
}

// WithEmail attaches the authenticated employee's email
func (l *Logger) WithEmail(email string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("email", email).Logger()}
}

// WithComponent attaches a component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("component", component).Logger()}
}
