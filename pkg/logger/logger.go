package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leveled package logger backed by zerolog.
// - JSON lines on stdout by default, console output with Init(level, "console")
// - Debug/Info/Warn/Error/Fatal variants plus Event for structured fields

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu         sync.RWMutex
	out        io.Writer = os.Stdout
	level      Level     = LevelInfo
	formatName string
	logger     = newLogger(out, "").Level(zerolog.InfoLevel)
)

func newLogger(w io.Writer, format string) zerolog.Logger {
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error,
// fatal) and, optionally, the output format ("json" or "console").
// Call early during startup. Default level is Info.
func Init(l string, format ...string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
	if len(format) > 0 {
		formatName = format[0]
	}
	logger = newLogger(out, formatName).Level(zerologLevel(level))
}

// SetOutput redirects log output, keeping the current level and format.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger = newLogger(out, formatName).Level(zerologLevel(level))
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	}
	return zerolog.InfoLevel
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Event starts a structured event at the given level; callers add fields and
// finish it with Msg. Returns nil (a no-op event) when the level is filtered.
func Event(l Level) *zerolog.Event {
	lg := current()
	switch l {
	case LevelDebug:
		return lg.Debug()
	case LevelWarn:
		return lg.Warn()
	case LevelError:
		return lg.Error()
	}
	return lg.Info()
}

func Debugf(format string, v ...interface{}) { current().Debug().Msgf(format, v...) }

func Infof(format string, v ...interface{}) { current().Info().Msgf(format, v...) }

func Warnf(format string, v ...interface{}) { current().Warn().Msgf(format, v...) }

func Errorf(format string, v ...interface{}) { current().Error().Msgf(format, v...) }

// Fatalf logs and exits the process.
func Fatalf(format string, v ...interface{}) {
	lg := current()
	lg.WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	current().Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
