// Package log provides the named, leveled loggers shared by the renderer
// packages and the command line.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level controls logger verbosity.
type Level int

// Levels from most to least verbose.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// DefaultLevel is used until the command line asks for more output.
const DefaultLevel = Notice

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	currentLevel   = DefaultLevel
)

// Logger is the leveled logging interface used across the renderer.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a package or command. The name is printed in
// the module column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink sends all log output to sink. The current level is kept.
func SetSink(sink io.Writer) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	leveledBackend.SetLevel(backendLevels[currentLevel], "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every logger. Unknown levels are ignored.
func SetLevel(level Level) {
	backendLevel, ok := backendLevels[level]
	if !ok {
		return
	}
	currentLevel = level
	leveledBackend.SetLevel(backendLevel, "")
}

// CurrentLevel returns the level set by the last SetLevel call.
func CurrentLevel() Level {
	return currentLevel
}

// Verbosity maps the number of -v switches on the command line to a level:
// none keeps DefaultLevel, one shows progress and two or more add debug output.
func Verbosity(count int) Level {
	switch {
	case count <= 0:
		return DefaultLevel
	case count == 1:
		return Info
	default:
		return Debug
	}
}

func init() {
	SetSink(os.Stderr)
}
