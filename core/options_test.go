package core

import (
	"context"
	"testing"
)

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	return l.values, nil
}

func TestCfgxConfigProvider_AppliesDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(nil)
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceName != "apikit" {
		t.Fatalf("expected defaults when loader is empty, got %q", cfg.ServiceName)
	}
}

func TestCfgxConfigProvider_LoadsRawValues(t *testing.T) {
	provider := NewCfgxConfigProvider(mapRawLoader{values: map[string]any{
		"service_name": "from-config",
		"log_level":    "debug",
	}})
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceName != "from-config" {
		t.Fatalf("expected loaded service_name, got %q", cfg.ServiceName)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected loaded log_level, got %q", cfg.LogLevel)
	}
	if cfg.ScopeDelimiter != " " {
		t.Fatalf("expected default scope_delimiter to survive, got %q", cfg.ScopeDelimiter)
	}
}

func TestGoOptionsResolver_LayeringPrecedence(t *testing.T) {
	resolver := GoOptionsResolver{}

	defaults := DefaultConfig()
	loaded := Config{ServiceName: "from-config", LogLevel: "debug"}
	runtime := Config{LogLevel: "error"}

	resolved, err := resolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ServiceName != "from-config" {
		t.Fatalf("expected config layer to override defaults, got %q", resolved.ServiceName)
	}
	if resolved.LogLevel != "error" {
		t.Fatalf("expected runtime layer to win, got %q", resolved.LogLevel)
	}
	if resolved.ScopeDelimiter != " " {
		t.Fatalf("expected defaults to fill untouched fields, got %q", resolved.ScopeDelimiter)
	}
}

func TestGoOptionsResolver_ValidatesResolvedConfig(t *testing.T) {
	resolver := GoOptionsResolver{}

	_, err := resolver.Resolve(Config{ServiceName: "", ScopeDelimiter: ""}, Config{}, Config{})
	if err == nil {
		t.Fatalf("expected invalid resolved config to fail")
	}
}
