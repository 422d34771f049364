package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.Nop()

type ctxKey struct{}

// Init configures the global logger. Development environments get
// console output on stdout; everything else writes JSON lines to out.
func Init(env, logLevel string) {
	InitWithWriter(env, logLevel, os.Stdout)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(env, logLevel string, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if isDevelopment(env) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(ParseLevel(logLevel))
	log = zerolog.New(out).With().Timestamp().Caller().Logger()
}

// ParseLevel maps a config string to a level. Unknown values mean info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

func isDevelopment(env string) bool {
	switch env {
	case "", "dev", "development":
		return true
	}
	return false
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the logger stored in ctx, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext stores l in ctx.
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID derives a logger tagged with the request id.
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// ServiceStart logs service startup.
func ServiceStart(name, env, port string) {
	log.Info().
		Str("service", name).
		Str("env", env).
		Str("port", port).
		Msg("Service Started")
}

// ServiceStop logs service shutdown.
func ServiceStop(name string) {
	log.Info().
		Str("service", name).
		Msg("Service Stopped")
}
