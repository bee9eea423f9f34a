package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-apikit/logging"
)

const (
	defaultTokenRequestTimeout = 30 * time.Second
	defaultRenewBefore         = 2 * time.Minute
	maxTokenResponseBodyBytes  = 1 << 20 // 1 MiB
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientCredentialsSource obtains and caches tokens through the OAuth2
// client credentials grant. The cached token is reused until it enters the
// renew window, then replaced with a fresh one.
type ClientCredentialsSource struct {
	cfg         Config
	httpClient  HTTPDoer
	renewBefore time.Duration
	now         func() time.Time
	logger      glog.Logger

	mu     sync.Mutex
	cached Token
	hasTok bool
}

type SourceOption func(*ClientCredentialsSource)

func WithHTTPClient(client HTTPDoer) SourceOption {
	return func(s *ClientCredentialsSource) {
		s.httpClient = client
	}
}

func WithRenewBefore(window time.Duration) SourceOption {
	return func(s *ClientCredentialsSource) {
		s.renewBefore = window
	}
}

func WithClock(now func() time.Time) SourceOption {
	return func(s *ClientCredentialsSource) {
		s.now = now
	}
}

func WithSourceLogger(logger glog.Logger) SourceOption {
	return func(s *ClientCredentialsSource) {
		s.logger = logger
	}
}

func NewClientCredentialsSource(cfg Config, options ...SourceOption) (*ClientCredentialsSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grant := cfg.grantTypeOrDefault(); grant != GrantTypeClientCredentials {
		return nil, fmt.Errorf("auth: invalid grant type %q for client credentials source", grant)
	}

	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	cfg.ClientSecret = strings.TrimSpace(cfg.ClientSecret)
	cfg.TokenURL = strings.TrimSpace(cfg.TokenURL)
	cfg.Scopes = cfg.scopeStrategy().Normalize(cfg.Scopes)

	logging.RegisterSecret(cfg.ClientSecret)

	source := &ClientCredentialsSource{
		cfg:         cfg,
		renewBefore: defaultRenewBefore,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(source)
	}
	if source.renewBefore <= 0 {
		source.renewBefore = defaultRenewBefore
	}
	if source.now == nil {
		source.now = func() time.Time { return time.Now().UTC() }
	}
	if source.httpClient == nil {
		source.httpClient = defaultHTTPClient(cfg)
	}
	return source, nil
}

func defaultHTTPClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTokenRequestTimeout
	}
	client := &http.Client{Timeout: timeout}
	if cfg.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}

// Token returns a valid token, requesting a new one when the cache is empty
// or the cached token is inside the renew window.
func (s *ClientCredentialsSource) Token(ctx context.Context) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.hasTok && s.cached.Valid(now.Add(s.renewBefore)) {
		return s.cached, nil
	}

	payload, err := s.requestToken(ctx)
	if err != nil {
		return Token{}, err
	}

	token := Token{
		AccessToken:  payload.AccessToken,
		TokenType:    payload.TokenType,
		RefreshToken: payload.RefreshToken,
		Scopes:       s.cfg.scopeStrategy().Split(payload.Scope),
		CreatedAt:    now,
		ExpiresIn:    time.Duration(payload.ExpiresIn) * time.Second,
	}
	s.cached = token
	s.hasTok = true

	if s.logger != nil {
		s.logger.Debug("token issued",
			"client_id", s.cfg.ClientID,
			"grant_type", string(GrantTypeClientCredentials),
			"scope", s.cfg.ScopeString(),
		)
	}
	return token, nil
}

// Invalidate drops the cached token so the next call requests a fresh one.
func (s *ClientCredentialsSource) Invalidate() {
	s.mu.Lock()
	s.hasTok = false
	s.cached = Token{}
	s.mu.Unlock()
}

type tokenEndpointPayload struct {
	AccessToken      string
	TokenType        string
	RefreshToken     string
	Scope            string
	ExpiresIn        int64
	ErrorCode        string
	ErrorDescription string
}

func (s *ClientCredentialsSource) requestToken(ctx context.Context) (tokenEndpointPayload, error) {
	values := url.Values{}
	values.Set("grant_type", string(GrantTypeClientCredentials))
	if scope := s.cfg.ScopeString(); scope != "" {
		values.Set("scope", scope)
	}
	values.Set("client_id", s.cfg.ClientID)
	if s.cfg.SecretInBody {
		values.Set("client_secret", s.cfg.ClientSecret)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.cfg.TokenURL,
		strings.NewReader(values.Encode()),
	)
	if err != nil {
		return tokenEndpointPayload{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if !s.cfg.SecretInBody {
		httpReq.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	}

	response, err := s.httpClient.Do(httpReq)
	if err != nil {
		return tokenEndpointPayload{}, fmt.Errorf("auth: token request failed: %w", err)
	}
	defer response.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(response.Body, maxTokenResponseBodyBytes+1))
	if readErr != nil {
		return tokenEndpointPayload{}, fmt.Errorf("auth: read token response: %w", readErr)
	}
	if int64(len(body)) > maxTokenResponseBodyBytes {
		return tokenEndpointPayload{}, fmt.Errorf("auth: token response exceeds %d bytes", maxTokenResponseBodyBytes)
	}

	payload, parseErr := parseTokenPayload(body, response.Header.Get("Content-Type"))
	if parseErr != nil {
		return tokenEndpointPayload{}, fmt.Errorf("auth: decode token response: %w", parseErr)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return tokenEndpointPayload{}, fmt.Errorf(
			"auth: token endpoint error (%d): %s",
			response.StatusCode,
			describeTokenError(payload),
		)
	}
	if payload.ErrorCode != "" {
		return tokenEndpointPayload{}, fmt.Errorf("auth: token endpoint error: %s", describeTokenError(payload))
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return tokenEndpointPayload{}, fmt.Errorf("auth: token endpoint response missing access token")
	}
	return payload, nil
}

func describeTokenError(payload tokenEndpointPayload) string {
	if strings.TrimSpace(payload.ErrorDescription) != "" {
		return strings.TrimSpace(payload.ErrorDescription)
	}
	if strings.TrimSpace(payload.ErrorCode) != "" {
		return strings.TrimSpace(payload.ErrorCode)
	}
	return "unknown error"
}

func parseTokenPayload(body []byte, contentType string) (tokenEndpointPayload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if strings.Contains(contentType, "json") {
		return parseTokenPayloadJSON(body)
	}
	if strings.Contains(contentType, "x-www-form-urlencoded") || strings.Contains(contentType, "text/plain") {
		return parseTokenPayloadForm(body)
	}
	if payload, err := parseTokenPayloadJSON(body); err == nil {
		return payload, nil
	}
	return parseTokenPayloadForm(body)
}

func parseTokenPayloadJSON(body []byte) (tokenEndpointPayload, error) {
	if len(bytesTrimSpace(body)) == 0 {
		return tokenEndpointPayload{}, fmt.Errorf("empty payload")
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return tokenEndpointPayload{}, err
	}
	return tokenEndpointPayload{
		AccessToken:      readAnyString(decoded["access_token"]),
		TokenType:        readAnyString(decoded["token_type"]),
		RefreshToken:     readAnyString(decoded["refresh_token"]),
		Scope:            readAnyString(decoded["scope"]),
		ExpiresIn:        readAnyInt64(decoded["expires_in"]),
		ErrorCode:        readAnyString(decoded["error"]),
		ErrorDescription: readAnyString(decoded["error_description"]),
	}, nil
}

func parseTokenPayloadForm(body []byte) (tokenEndpointPayload, error) {
	if len(bytesTrimSpace(body)) == 0 {
		return tokenEndpointPayload{}, fmt.Errorf("empty payload")
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return tokenEndpointPayload{}, err
	}
	return tokenEndpointPayload{
		AccessToken:      strings.TrimSpace(values.Get("access_token")),
		TokenType:        strings.TrimSpace(values.Get("token_type")),
		RefreshToken:     strings.TrimSpace(values.Get("refresh_token")),
		Scope:            strings.TrimSpace(values.Get("scope")),
		ExpiresIn:        readAnyInt64(values.Get("expires_in")),
		ErrorCode:        strings.TrimSpace(values.Get("error")),
		ErrorDescription: strings.TrimSpace(values.Get("error_description")),
	}, nil
}
