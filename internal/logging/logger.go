// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string

	// Format is json or console. Default: json
	Format string

	// Caller adds file:line to each line.
	Caller bool

	// Timestamp adds a "time" field. Default: true
	Timestamp bool

	// Service, when set, is added to every line as "service".
	Service string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// global holds the process logger. Loads are lock-free; Init and
// SetLogger swap the pointer.
var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // packages log before main calls Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	Init(DefaultConfig())
}

// Init builds the global logger from cfg. It may be called again, e.g.
// by the CLI after parsing flags.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	l := ctx.Logger()
	global.Store(&l)
}

var levelNames = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"disabled": zerolog.Disabled,
}

// parseLevel maps a level name to zerolog, falling back to info.
func parseLevel(level string) zerolog.Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// SetLogger replaces the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	global.Store(&l)
}

// With creates a child logger context from the global logger.
//
//	l := logging.With().Str("file", path).Logger()
func With() zerolog.Context {
	return global.Load().With()
}

// Debug starts a debug message.
func Debug() *zerolog.Event { return global.Load().Debug() }

// Info starts an info message.
//
//	logging.Info().Int("port", 8790).Msg("Server starting")
func Info() *zerolog.Event { return global.Load().Info() }

// Warn starts a warning message.
func Warn() *zerolog.Event { return global.Load().Warn() }

// Error starts an error message.
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal starts a fatal message; os.Exit(1) follows Msg.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// Err starts an error level message carrying err, or info when err is nil.
//
//	logging.Err(err).Str("file", path).Msg("Batch failed")
func Err(err error) *zerolog.Event { return global.Load().Err(err) }

// SetLevelString changes the global level at runtime, as on config reload.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// GetLevel returns the current global log level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// NewTestLogger returns a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
