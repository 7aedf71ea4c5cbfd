package logger

import (
	"fmt"
	"strconv"
	"strings"
)

// Level zero means unset
type Level int

const (
	LevelError Level = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = [...]string{
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
}

// Levels returns the textual names of all levels from the least to the most verbose
func Levels() []string {
	return append([]string(nil), levelNames[LevelError:]...)
}

func (l Level) MarshalText() (text []byte, err error) {
	if l < 0 || l > LevelTrace {
		return nil, fmt.Errorf("unexpected log level: %d", l)
	}
	return []byte(levelNames[l]), nil
}

func (l Level) String() string {
	text, err := l.MarshalText()
	if err != nil {
		return strconv.FormatInt(int64(l), 10)
	}
	return string(text)
}

func (l *Level) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = 0
		return nil
	}
	for i := LevelError; i <= LevelTrace; i++ {
		if strings.EqualFold(string(text), levelNames[i]) {
			*l = i
			return nil
		}
	}
	return fmt.Errorf("unknown log level: %s", string(text))
}

type Logger interface {
	With(field string, value any) Logger
	WithFields(fields map[string]any) Logger
	Logf(level Level, format string, args ...any)
	Log(level Level, args ...any)
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
	Tracef(format string, args ...any)
	Trace(args ...any)
}

type discard struct{}

// Discard drops everything
var Discard Logger = discard{}

func (discard) With(string, any) Logger          { return discard{} }
func (discard) WithFields(map[string]any) Logger { return discard{} }
func (discard) Logf(Level, string, ...any)       {}
func (discard) Log(Level, ...any)                {}
func (discard) Errorf(string, ...any)            {}
func (discard) Error(...any)                     {}
func (discard) Warnf(string, ...any)             {}
func (discard) Warn(...any)                      {}
func (discard) Infof(string, ...any)             {}
func (discard) Info(...any)                      {}
func (discard) Debugf(string, ...any)            {}
func (discard) Debug(...any)                     {}
func (discard) Tracef(string, ...any)            {}
func (discard) Trace(...any)                     {}
