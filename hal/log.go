package hal

import (
	"fmt"
	"strings"
)

// LogLevel is parsed from the optional "level: " prefix of a log line.
type LogLevel uint8

const (
	LevelInfo LogLevel = iota
	LevelDebug
	LevelWarn
	LevelError
)

// Logf formats and writes one line. A nil logger drops the line.
func Logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}

// Debugf writes a line tagged "debug: ".
func Debugf(l Logger, format string, args ...any) {
	Logf(l, "debug: "+format, args...)
}

// Errorf writes a line tagged "error: ".
func Errorf(l Logger, format string, args ...any) {
	Logf(l, "error: "+format, args...)
}

// SplitLevel strips a known level prefix from s.
//
// Lines without a prefix are LevelInfo.
func SplitLevel(s string) (LogLevel, string) {
	switch {
	case strings.HasPrefix(s, "debug: "):
		return LevelDebug, s[len("debug: "):]
	case strings.HasPrefix(s, "warn: "):
		return LevelWarn, s[len("warn: "):]
	case strings.HasPrefix(s, "error: "):
		return LevelError, s[len("error: "):]
	default:
		return LevelInfo, s
	}
}
