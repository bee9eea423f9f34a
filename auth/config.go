package auth

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-apikit/strategy"
)

// Config is the OAuth2 configuration value object. Build it with a struct
// literal and call Validate before use; constructors in this package do so
// for you.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	RedirectURL  string
	Scopes       []string
	GrantType    GrantType
	ResponseType ResponseType
	Timeout      time.Duration
	// InsecureSkipVerify disables TLS certificate verification on the
	// default HTTP client. Never enable it outside local development.
	InsecureSkipVerify bool
	// SecretInBody sends the client secret as a form field instead of
	// basic auth, for providers that require it.
	SecretInBody  bool
	ScopeStrategy *strategy.ScopeStrategy
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("auth: client id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("auth: client secret is required")
	}
	if err := validateEndpointURL("token url", c.TokenURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.RedirectURL) != "" {
		if _, err := url.Parse(strings.TrimSpace(c.RedirectURL)); err != nil {
			return fmt.Errorf("auth: invalid redirect url: %w", err)
		}
	}
	if c.GrantType != "" && !c.GrantType.Valid() {
		return fmt.Errorf("auth: invalid grant type %q", c.GrantType)
	}
	if c.ResponseType != "" && !c.ResponseType.Valid() {
		return fmt.Errorf("auth: invalid response type %q", c.ResponseType)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("auth: timeout must not be negative")
	}
	return nil
}

func validateEndpointURL(field, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("auth: %s is required", field)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("auth: invalid %s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("auth: %s must use http or https", field)
	}
	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("auth: %s must have a host", field)
	}
	if !strings.Contains(host, ".") {
		return fmt.Errorf("auth: %s must have a valid domain", field)
	}
	return nil
}

func (c Config) scopeStrategy() *strategy.ScopeStrategy {
	if c.ScopeStrategy != nil {
		return c.ScopeStrategy
	}
	return strategy.DefaultScopeStrategy()
}

// ScopeString merges the configured scopes through the scope strategy.
func (c Config) ScopeString() string {
	return c.scopeStrategy().Merge(c.Scopes)
}

// WithScopeString returns a copy of the config with Scopes replaced by the
// split of the given scope string.
func (c Config) WithScopeString(scopes string) Config {
	c.Scopes = c.scopeStrategy().Split(scopes)
	return c
}

func (c Config) grantTypeOrDefault() GrantType {
	if c.GrantType == "" {
		return GrantTypeClientCredentials
	}
	return c.GrantType
}
