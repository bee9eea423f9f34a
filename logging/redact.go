package logging

import (
	"context"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"
)

const RedactedValue = "[REDACTED]"

var (
	secretMu sync.RWMutex
	secrets  []string
)

// RegisterSecret adds a literal to the process-wide mask registry. Empty
// strings and duplicates are ignored.
func RegisterSecret(secret string) {
	if secret == "" {
		return
	}
	secretMu.Lock()
	defer secretMu.Unlock()
	for _, existing := range secrets {
		if existing == secret {
			return
		}
	}
	secrets = append(secrets, secret)
}

// ResetSecrets clears the registry. Intended for tests.
func ResetSecrets() {
	secretMu.Lock()
	secrets = nil
	secretMu.Unlock()
}

// Mask replaces every occurrence of a registered secret with asterisks of
// the same length, so operators can still see that a value was present.
func Mask(text string) string {
	secretMu.RLock()
	registered := secrets
	secretMu.RUnlock()
	for _, secret := range registered {
		if strings.Contains(text, secret) {
			text = strings.ReplaceAll(text, secret, strings.Repeat("*", len(secret)))
		}
	}
	return text
}

// WithSecretMasking wraps a logger so registered secrets are masked in the
// message and in string arguments before delegation.
func WithSecretMasking(base glog.Logger) glog.Logger {
	if base == nil {
		base = glog.Nop()
	}
	return &maskingLogger{base: base}
}

type maskingLogger struct {
	base glog.Logger
}

func maskArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}
	masked := make([]any, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			masked[i] = Mask(s)
			continue
		}
		masked[i] = arg
	}
	return masked
}

func (l *maskingLogger) Trace(msg string, args ...any) {
	l.base.Trace(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) Debug(msg string, args ...any) {
	l.base.Debug(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) Info(msg string, args ...any) {
	l.base.Info(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) Warn(msg string, args ...any) {
	l.base.Warn(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) Error(msg string, args ...any) {
	l.base.Error(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) Fatal(msg string, args ...any) {
	l.base.Fatal(Mask(msg), maskArgs(args)...)
}

func (l *maskingLogger) WithContext(ctx context.Context) glog.Logger {
	return &maskingLogger{base: l.base.WithContext(ctx)}
}

// RedactSensitiveMap returns a copy of metadata with values under
// credential-bearing keys replaced by RedactedValue. Traceability keys pass
// through untouched.
func RedactSensitiveMap(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return map[string]any{}
	}
	return redactSensitiveMap(metadata)
}

func redactSensitiveMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		if shouldRedactKey(key) {
			target[key] = RedactedValue
			continue
		}
		target[key] = redactSensitiveValue(value)
	}
	return target
}

func redactSensitiveValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return redactSensitiveMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = redactSensitiveValue(typed[i])
		}
		return out
	default:
		return value
	}
}

func shouldRedactKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || isTraceabilityKey(key) {
		return false
	}
	sensitiveTokens := []string{
		"password",
		"secret",
		"token",
		"authorization",
		"api_key",
		"apikey",
		"access_key",
		"refresh",
		"credential",
		"signature",
	}
	for _, token := range sensitiveTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}

func isTraceabilityKey(key string) bool {
	switch key {
	case "request_id",
		"trace_id",
		"client_id",
		"grant_type",
		"token_url",
		"scope",
		"service_name":
		return true
	default:
		return false
	}
}
