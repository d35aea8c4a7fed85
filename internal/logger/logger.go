package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Levels lists the accepted level names, most verbose first.
var Levels = []string{"debug", "info", "warn", "error"}

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is the narrow logging surface shared by the grid, its hosts and
// the CLI. A nil *Logger discards everything.
type Logger struct {
	base zerolog.Logger
}

// New creates a logger writing to opts.Writer, stderr by default. An empty
// level means info.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return &Logger{base: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	for _, known := range Levels {
		if name == known {
			return zerolog.ParseLevel(name)
		}
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q, expected one of %s", name, strings.Join(Levels, ", "))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// For returns a logger tagged with the component that writes through it.
func (l *Logger) For(component string) *Logger {
	return l.WithField("component", component)
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.base.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{base: ctx.Logger()}
}

// WithField is WithFields for a single key.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Interface(key, value).Logger()}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	if l == nil {
		return nil
	}
	return l.base.WithLevel(level)
}

// Debug writes a debug entry.
func (l *Logger) Debug(msg string) { l.event(zerolog.DebugLevel).Msg(msg) }

// Info writes an info entry.
func (l *Logger) Info(msg string) { l.event(zerolog.InfoLevel).Msg(msg) }

// Warn writes a warning.
func (l *Logger) Warn(msg string) { l.event(zerolog.WarnLevel).Msg(msg) }

// Error writes err with msg.
func (l *Logger) Error(err error, msg string) {
	l.event(zerolog.ErrorLevel).Err(err).Msg(msg)
}
