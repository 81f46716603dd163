package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

var (
	outputMu sync.RWMutex
	output   io.Writer = os.Stderr
	noColor  bool
)

// SetOutput redirects every logger created afterwards. The TUI points this
// at a file so log lines do not tear the alternate screen.
func SetOutput(w io.Writer, disableColor bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
	noColor = disableColor
}

func currentOutput() (io.Writer, bool) {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return output, noColor
}

// Logger is a component-scoped diagnostic logger. Debug and Info are only
// emitted in verbose mode; Warn and Error always are.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	out            io.Writer
	noColor        bool
	zl             zerolog.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	w, disableColor := currentOutput()
	return newLogger(component, verboseChecker, w, disableColor)
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger writing to w, bypassing the shared output
func NewWithWriter(component string, verboseCheck func() bool, w io.Writer) *Logger {
	return newLogger(component, &callbackChecker{callback: verboseCheck}, w, true)
}

func newLogger(component string, checker VerboseChecker, w io.Writer, disableColor bool) *Logger {
	if component == "" {
		component = "main"
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    disableColor,
	}

	zl := zerolog.New(console).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Str("component", component).
		Logger()

	return &Logger{
		component:      component,
		verboseChecker: checker,
		out:            w,
		noColor:        disableColor,
		zl:             zl,
	}
}

// levelFromEnv reads JIM_LOG_LEVEL; unknown values fall back to debug so the
// verbose flag stays the only gate.
func levelFromEnv() zerolog.Level {
	raw := strings.TrimSpace(os.Getenv("JIM_LOG_LEVEL"))
	if raw == "" {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.DebugLevel
	}
	return level
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return newLogger(component, l.verboseChecker, l.out, l.noColor)
}

// Component returns the component name
func (l *Logger) Component() string {
	return l.component
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.zl.Debug().Msgf(msg, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.zl.Info().Msgf(msg, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.zl.Debug().Fields(fieldMap(fields)).Msgf(msg, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.zl.Info().Fields(fieldMap(fields)).Msgf(msg, args...)
	}
}

// ErrorWithFields logs error message with structured fields (always shown)
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.zl.Error().Fields(fieldMap(fields)).Msgf(msg, args...)
}

func fieldMap(fields []Field) map[string]interface{} {
	m := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		if err, ok := field.Value.(error); ok && err != nil {
			m[field.Key] = err.Error()
			continue
		}
		m[field.Key] = field.Value
	}
	return m
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d.String()}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
