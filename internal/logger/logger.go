// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the learning platform. Request handlers
// and services take their logger from the context; the root logger is built
// once in main.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API stays available.
type Logger struct {
	zerolog.Logger
}

type options struct {
	out     io.Writer
	level   zerolog.Level
	console bool
}

// Option customizes [NewLogger].
type Option func(*options)

// WithOutput redirects log output. Stdout is used by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLevel sets the minimum level. Unknown names keep the debug default.
func WithLevel(name string) Option {
	return func(o *options) {
		if lvl, err := zerolog.ParseLevel(name); err == nil && lvl != zerolog.NoLevel {
			o.level = lvl
		}
	}
}

// WithConsole switches from JSON lines to zerolog's human-readable console
// format. Meant for local development only.
func WithConsole() Option {
	return func(o *options) { o.console = true }
}

// NewLogger builds the root logger. Every entry carries the role, a
// timestamp and the calling function name in the "func" field.
func NewLogger(role string, opts ...Option) *Logger {
	o := options{out: os.Stdout, level: zerolog.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	zerolog.SetGlobalLevel(o.level)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	out := o.out
	if o.console {
		out = zerolog.ConsoleWriter{Out: o.out, TimeFormat: time.RFC3339}
	}

	return &Logger{zerolog.New(out).With().Str("role", role).Timestamp().Caller().Logger()}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies the receiver so fields can be added to the copy.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithUserID tags every entry with the authenticated user's id.
func (l *Logger) WithUserID(userID int64) *Logger {
	return &Logger{l.With().Int64("user_id", userID).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. When none is attached
// zerolog's default context logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
