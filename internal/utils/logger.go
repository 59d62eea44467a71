package utils

import (
	"fmt"
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode    bool
	CurrentLevel LogLevel = LevelWarn
	ShowDebugUI  bool
)

const (
	ansiReset   = "\033[0m"
	ansiMagenta = "\033[35m"
)

var levelInfo = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

func (l LogLevel) valid() bool { return l >= LevelDebug && l <= LevelError }

func (l LogLevel) String() string {
	if !l.valid() {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelInfo[l].name
}

// ParseLogLevel maps a flag value such as "info" to a LogLevel. "warning"
// is accepted for "warn".
func ParseLogLevel(name string) (LogLevel, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "WARNING" {
		key = "WARN"
	}
	for l, info := range levelInfo {
		if info.name == key {
			return LogLevel(l), nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", name)
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel || !level.valid() {
		return
	}
	info := levelInfo[level]
	log.Printf(info.color+"["+info.name+"]"+ansiReset+" "+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

// raylibLevel maps raylib's TraceLogLevel (LOG_TRACE = 1 .. LOG_FATAL = 6)
// onto ours. LOG_ALL and LOG_NONE carry no message.
func raylibLevel(level int) (LogLevel, bool) {
	switch level {
	case 1, 2:
		return LevelDebug, true
	case 3:
		return LevelInfo, true
	case 4:
		return LevelWarn, true
	case 5, 6:
		return LevelError, true
	}
	return 0, false
}

// RaylibLogCallback forwards raylib trace output into the levelled logger.
func RaylibLogCallback(level int, text string) {
	if l, ok := raylibLevel(level); ok {
		logMessage(l, "%s", ansiMagenta+"[RAYLIB]"+ansiReset+" "+text)
	}
}
