// Package logger wraps hclog behind the small interface the commands use
// and carries the logger through context.Context.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var nullLogger = &instance{log: hclog.NewNullLogger()}

// Level is a logging verbosity
type Level int

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

// LevelNames lists the accepted level strings, least verbose first
var LevelNames = []string{ERROR.String(), WARN.String(), INFO.String(), DEBUG.String(), TRACE.String()}

func (l Level) String() string {
	switch l {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// LevelFromString parses a level name, falling back to WARN
func LevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return WARN
	}
}

func (l Level) hclogLevel() hclog.Level {
	switch l {
	case TRACE:
		return hclog.Trace
	case DEBUG:
		return hclog.Debug
	case INFO:
		return hclog.Info
	case ERROR:
		return hclog.Error
	default:
		return hclog.Warn
	}
}

// Logger is the logging surface used across the commands
type Logger interface {
	WithName(name string) Logger
	SetLevel(level Level)
	Trace(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

var _ Logger = &instance{}

type instance struct {
	log hclog.Logger
}

// NewLogger returns a WARN-level logger writing human-readable lines to w
func NewLogger(w io.Writer) Logger {
	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			Name:   "cwput",
			Output: w,
			TimeFn: time.Now,
			Level:  WARN.hclogLevel(),
		}),
	}
}

func (i instance) WithName(name string) Logger {
	return &instance{log: i.log.Named(name)}
}

func (i instance) SetLevel(level Level) {
	i.log.SetLevel(level.hclogLevel())
}

func (i instance) Trace(msg string, args ...interface{}) {
	i.log.Trace(msg, args...)
}

func (i instance) Debug(msg string, args ...interface{}) {
	i.log.Debug(msg, args...)
}

func (i instance) Info(msg string, args ...interface{}) {
	i.log.Info(msg, args...)
}

func (i instance) Warn(msg string, args ...interface{}) {
	i.log.Warn(msg, args...)
}

func (i instance) Error(msg string, args ...interface{}) {
	i.log.Error(msg, args...)
}
