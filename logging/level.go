package logging

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[string]Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
	"fatal": LevelFatal,
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
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
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel resolves a level name case-insensitively. Unknown names are
// caller errors.
func ParseLevel(name string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	level, ok := levelNames[normalized]
	if !ok {
		return LevelInfo, fmt.Errorf("logging: unknown log level %q", name)
	}
	return level, nil
}

type setupOptions struct {
	base     glog.Logger
	provider glog.LoggerProvider
	name     string
	masking  bool
}

type Option func(*setupOptions)

// WithBase sets the logger the leveled wrapper delegates to.
func WithBase(logger glog.Logger) Option {
	return func(o *setupOptions) {
		o.base = logger
	}
}

// WithProvider resolves the base logger from a provider; provider wins over
// a direct logger, matching glog resolution precedence.
func WithProvider(provider glog.LoggerProvider) Option {
	return func(o *setupOptions) {
		o.provider = provider
	}
}

// WithName sets the name used when resolving from a provider.
func WithName(name string) Option {
	return func(o *setupOptions) {
		o.name = name
	}
}

// WithMasking wraps the result so registered secrets are masked.
func WithMasking() Option {
	return func(o *setupOptions) {
		o.masking = true
	}
}

// Setup builds a leveled logger from a level name. Records below the level
// are dropped; everything else is delegated unchanged.
func Setup(level string, options ...Option) (glog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := setupOptions{name: "apikit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	_, base := glog.Resolve(cfg.name, cfg.provider, cfg.base)
	base = glog.Ensure(base)

	var logger glog.Logger = &leveledLogger{level: parsed, base: base}
	if cfg.masking {
		logger = WithSecretMasking(logger)
	}
	return logger, nil
}

type leveledLogger struct {
	level Level
	base  glog.Logger
}

func (l *leveledLogger) Trace(msg string, args ...any) {
	if l.level <= LevelTrace {
		l.base.Trace(msg, args...)
	}
}

func (l *leveledLogger) Debug(msg string, args ...any) {
	if l.level <= LevelDebug {
		l.base.Debug(msg, args...)
	}
}

func (l *leveledLogger) Info(msg string, args ...any) {
	if l.level <= LevelInfo {
		l.base.Info(msg, args...)
	}
}

func (l *leveledLogger) Warn(msg string, args ...any) {
	if l.level <= LevelWarn {
		l.base.Warn(msg, args...)
	}
}

func (l *leveledLogger) Error(msg string, args ...any) {
	if l.level <= LevelError {
		l.base.Error(msg, args...)
	}
}

func (l *leveledLogger) Fatal(msg string, args ...any) {
	l.base.Fatal(msg, args...)
}

func (l *leveledLogger) WithContext(ctx context.Context) glog.Logger {
	return &leveledLogger{level: l.level, base: l.base.WithContext(ctx)}
}
