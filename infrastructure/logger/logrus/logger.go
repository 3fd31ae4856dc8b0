// ABOUTME: logrus-backed Logger used by the server and CLI entry points
// ABOUTME: Level comes from LOG_LEVEL so deployments can tune verbosity without a rebuild

package logrus

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger adapts a logrus logger to the Logger interface.
type Logger struct {
	log *logrus.Logger
}

// NewLogger builds a logger writing to stdout. LOG_LEVEL selects the
// minimum level (debug, info, warn, error); unset or unparseable
// means info.
func NewLogger() *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &Logger{log: log}
}

// Debug logs a debug message with structured fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message with structured fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message with structured fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message with structured fields.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
