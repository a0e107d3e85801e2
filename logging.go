package galaxy

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level is the minimum severity a DefaultLogger prints. The zero Level is
// info.
type Level int32

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("Level(%d)", int32(l))
	}
	return levelNames[l-LevelDebug]
}

// ParseLevel accepts level names in any case. The empty string means info.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelInfo, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i) + LevelDebug, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// DefaultLogger writes debug and info lines to one writer and warnings and
// errors to another.
type DefaultLogger struct {
	min    atomic.Int32
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, level Level) *DefaultLogger {
	return NewDefaultLoggerTo(prefix, level, os.Stdout, os.Stderr)
}

func NewDefaultLoggerTo(prefix string, level Level, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	if prefix != "" {
		prefix = "[" + prefix + "] "
	}
	l := &DefaultLogger{
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
	l.SetLevel(level)
	return l
}

func (l *DefaultLogger) Level() Level { return Level(l.min.Load()) }

func (l *DefaultLogger) SetLevel(level Level) { l.min.Store(int32(level)) }

func (l *DefaultLogger) DebugEnabled() bool { return l.Level() <= LevelDebug }

// SetDebug switches between debug and info.
func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.SetLevel(LevelDebug)
	} else {
		l.SetLevel(LevelInfo)
	}
}

func (l *DefaultLogger) logf(level Level, format string, args []any) {
	if level < l.Level() {
		return
	}
	dst := l.out
	if level >= LevelWarn {
		dst = l.err
	}
	dst.Printf("%s%s: %s", l.prefix, level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args) }

// LoggingModule installs a DefaultLogger as a resource. Install it first so
// later modules can log while installing.
type LoggingModule struct {
	Prefix string
	Level  Level
	// Output, when set, receives every level.
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	if m.Output != nil {
		app.addResources(NewDefaultLoggerTo(m.Prefix, m.Level, m.Output, m.Output))
		return
	}
	app.addResources(NewDefaultLogger(m.Prefix, m.Level))
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the first Logger resource, or a no-op logger. Never nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
