package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config value such as "debug" or "WARN" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
}

// standardLogger implements Logger interface. Children created with
// WithFields share the parent's level and lock.
type standardLogger struct {
	state  *loggerState
	fields []Field
}

type loggerState struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
}

// NewLogger creates a new logger with the specified level and output
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &standardLogger{
		state: &loggerState{level: level, out: out},
	}
}

// NewDefaultLogger creates a logger with Info level writing to stderr.
// Stdout is left to command output.
func NewDefaultLogger() Logger {
	return NewLogger(LevelInfo, os.Stderr)
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

func (l *standardLogger) SetLevel(level Level) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// WithFields returns a new logger with additional fields
func (l *standardLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &standardLogger{
		state:  l.state,
		fields: merged,
	}
}

func (l *standardLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields...)
}

func (l *standardLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

func (l *standardLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

func (l *standardLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

func (l *standardLogger) log(level Level, msg string, fields ...Field) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if level < l.state.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	b.WriteString(levelStyles[level].Render(fmt.Sprintf("[%s]", level)))
	b.WriteString(" ")
	b.WriteString(msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, field := range l.fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
		for _, field := range fields {
			fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
		}
	}
	b.WriteString("\n")

	_, _ = io.WriteString(l.state.out, b.String())
}

// Global default logger
var defaultLogger = NewDefaultLogger()

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	return defaultLogger
}

func Debug(msg string, fields ...Field) {
	defaultLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	defaultLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	defaultLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	defaultLogger.Error(msg, fields...)
}
