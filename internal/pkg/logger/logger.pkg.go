package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	Debug   *log.Logger
	HTTP    *log.Logger
)

const serviceName = "topup-store"

func init() {
	// package-level loggers must be usable from tests that never call Setup
	SetupWithWriter(io.Discard, "json", "info")
}

// Setup wires the package loggers to stdout using LOG_FORMAT and LOG_LEVEL.
func Setup() {
	SetupWithWriter(os.Stdout, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
}

// SetupWithWriter wires the package loggers to an arbitrary writer.
func SetupWithWriter(out io.Writer, format, level string) {
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(out).With().Timestamp().Str("service", serviceName).Logger()
	base = base.Level(parseLevel(level))

	Info = newLogger(base, zerolog.InfoLevel)
	Warning = newLogger(base, zerolog.WarnLevel)
	Error = newLogger(base, zerolog.ErrorLevel)
	Debug = newLogger(base, zerolog.DebugLevel)
	HTTP = newLogger(base.With().Str("component", "http").Logger(), zerolog.InfoLevel)
}

func parseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func newLogger(base zerolog.Logger, level zerolog.Level) *log.Logger {
	return log.New(&levelWriter{logger: base, level: level}, "", 0)
}

// levelWriter turns each line written by a *log.Logger into one zerolog event.
type levelWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (w *levelWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	w.logger.WithLevel(w.level).Msg(msg)
	return len(p), nil
}
