package core

import (
	"fmt"
	"strings"
)

type Config struct {
	ServiceName    string `koanf:"service_name" mapstructure:"service_name"`
	LogLevel       string `koanf:"log_level" mapstructure:"log_level"`
	ScopeDelimiter string `koanf:"scope_delimiter" mapstructure:"scope_delimiter"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:    "apikit",
		LogLevel:       "info",
		ScopeDelimiter: " ",
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	// A delimiter of " " is valid, so only reject the empty string.
	if c.ScopeDelimiter == "" {
		return fmt.Errorf("core: scope_delimiter is required")
	}
	return nil
}
