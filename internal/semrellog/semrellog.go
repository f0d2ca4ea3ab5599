// Package semrellog is a thin wrapper over zerolog, constructed once per
// run and passed down rather than reached for as a global: the embedding
// CLI layer builds a Logger from its verbosity flag and uses it to report
// progress of its own wiring (repository open, manifest detection, commit
// collection). The core packages do not take a Logger.
package semrellog

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"semrel.dev/semrel/internal/model"
)

// Logger wraps a zerolog.Logger with a Redacted-aware Field helper, so
// that logging a domain value (a Category, a Version, a CommitID) never
// risks leaking more than its Redacted() form.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing to out at the given level ("debug", "info",
// "warn", or "error"; anything else defaults to "info").
func New(level string, out io.Writer) Logger {
	return Logger{zl: zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a Logger tagged with a "component" field, the way a
// caller scopes log output to the subsystem emitting it (e.g. "walker",
// "manifest", "rules").
func (l Logger) Component(name string) Logger {
	return Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Debug, Info, Warn, and Error log a plain message at the matching level.
func (l Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l Logger) Error(msg string) { l.zl.Error().Msg(msg) }

// Err logs err at error level, along with an explanatory message.
func (l Logger) Err(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

// WithRedacted returns a Logger with an added field rendered through v's
// Redacted form rather than its String form, so a field accidentally
// logged at the wrong level never carries more detail than the type's
// author decided was safe.
func (l Logger) WithRedacted(key string, v model.Loggable) Logger {
	return Logger{zl: l.zl.With().Str(key, v.Redacted()).Logger()}
}

// Infof and Debugf log a formatted message, for call sites that already
// have a formatted string rather than a structured field to attach.
func (l Logger) Infof(format string, args ...any)  { l.zl.Info().Msg(fmt.Sprintf(format, args...)) }
func (l Logger) Debugf(format string, args ...any) { l.zl.Debug().Msg(fmt.Sprintf(format, args...)) }
