package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, payload map[string]any) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func newSource(t *testing.T, doer HTTPDoer, mutate func(*Config)) *ClientCredentialsSource {
	t.Helper()
	cfg := Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     "https://auth.example.com/oauth/token",
		Scopes:       []string{"read", "write"},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	source, err := NewClientCredentialsSource(cfg, WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	return source
}

func TestNewClientCredentialsSource_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClientCredentialsSource(Config{})
	if err == nil {
		t.Fatalf("expected invalid config to fail")
	}

	_, err = NewClientCredentialsSource(Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     "https://auth.example.com/oauth/token",
		GrantType:    GrantTypeAuthorizationCode,
	})
	if err == nil {
		t.Fatalf("expected mismatched grant type to fail")
	}
}

func TestClientCredentialsSource_RequestShape(t *testing.T) {
	var captured *http.Request
	var capturedBody string
	source := newSource(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		body, _ := io.ReadAll(req.Body)
		capturedBody = string(body)
		return jsonResponse(http.StatusOK, map[string]any{
			"access_token": "tok-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"scope":        "read write",
		}), nil
	}), nil)

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if captured.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", captured.Method)
	}
	if got := captured.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Fatalf("expected form content type, got %q", got)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-1:secret-1"))
	if got := captured.Header.Get("Authorization"); got != wantAuth {
		t.Fatalf("expected basic auth header, got %q", got)
	}
	if !strings.Contains(capturedBody, "grant_type=client_credentials") {
		t.Fatalf("expected client credentials grant in body, got %q", capturedBody)
	}
	if !strings.Contains(capturedBody, "scope=read+write") {
		t.Fatalf("expected merged scope in body, got %q", capturedBody)
	}
	if strings.Contains(capturedBody, "client_secret") {
		t.Fatalf("expected secret kept out of the body, got %q", capturedBody)
	}

	if token.AccessToken != "tok-1" {
		t.Fatalf("expected access token, got %q", token.AccessToken)
	}
	if token.TokenType != "Bearer" {
		t.Fatalf("expected bearer type, got %q", token.TokenType)
	}
	if token.ExpiresIn != time.Hour {
		t.Fatalf("expected one hour expiry, got %s", token.ExpiresIn)
	}
	if len(token.Scopes) != 2 {
		t.Fatalf("expected parsed scopes, got %v", token.Scopes)
	}
}

func TestClientCredentialsSource_SecretInBody(t *testing.T) {
	var capturedBody string
	var authHeader string
	source := newSource(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		capturedBody = string(body)
		authHeader = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, map[string]any{"access_token": "tok"}), nil
	}), func(cfg *Config) {
		cfg.SecretInBody = true
	})

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("token: %v", err)
	}
	if !strings.Contains(capturedBody, "client_secret=secret-1") {
		t.Fatalf("expected secret in body, got %q", capturedBody)
	}
	if authHeader != "" {
		t.Fatalf("expected no basic auth header, got %q", authHeader)
	}
}

func TestClientCredentialsSource_CachesUntilRenewWindow(t *testing.T) {
	var calls int
	now := time.Unix(1_700_000_000, 0).UTC()
	clock := func() time.Time { return now }

	cfg := Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     "https://auth.example.com/oauth/token",
	}
	source, err := NewClientCredentialsSource(cfg,
		WithHTTPClient(doerFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, map[string]any{
				"access_token": fmt.Sprintf("tok-%d", calls),
				"expires_in":   3600,
			}), nil
		})),
		WithClock(clock),
		WithRenewBefore(5*time.Minute),
	)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	first, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	second, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single endpoint call, got %d", calls)
	}
	if first.AccessToken != second.AccessToken {
		t.Fatalf("expected cached token reuse")
	}

	// Move inside the renew window: one hour minus grace minus renew window.
	now = now.Add(time.Hour - 3*time.Minute)
	third, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected renewal inside renew window, got %d calls", calls)
	}
	if third.AccessToken == first.AccessToken {
		t.Fatalf("expected a fresh token after renewal")
	}
}

func TestClientCredentialsSource_Invalidate(t *testing.T) {
	var calls int
	source := newSource(t, doerFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, map[string]any{
			"access_token": fmt.Sprintf("tok-%d", calls),
			"expires_in":   3600,
		}), nil
	}), nil)

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("token: %v", err)
	}
	source.Invalidate()
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("token: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected invalidate to force a new request, got %d calls", calls)
	}
}

func TestClientCredentialsSource_EndpointErrors(t *testing.T) {
	source := newSource(t, doerFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, map[string]any{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		}), nil
	}), nil)

	_, err := source.Token(context.Background())
	if err == nil {
		t.Fatalf("expected endpoint error")
	}
	if !strings.Contains(err.Error(), "token endpoint error (400)") {
		t.Fatalf("expected status in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "client authentication failed") {
		t.Fatalf("expected description in error, got %v", err)
	}
}

func TestClientCredentialsSource_MissingAccessToken(t *testing.T) {
	source := newSource(t, doerFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, map[string]any{"token_type": "Bearer"}), nil
	}), nil)

	_, err := source.Token(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing access token") {
		t.Fatalf("expected missing access token error, got %v", err)
	}
}

func TestClientCredentialsSource_FormEncodedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "access_token=tok-form&token_type=bearer&expires_in=120")
	}))
	defer server.Close()

	cfg := Config{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		TokenURL:     server.URL + "/token",
	}
	// httptest binds to 127.0.0.1, which carries a dot, so validation holds.
	source, err := NewClientCredentialsSource(cfg)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token.AccessToken != "tok-form" {
		t.Fatalf("expected form-decoded token, got %q", token.AccessToken)
	}
	if token.ExpiresIn != 2*time.Minute {
		t.Fatalf("expected 120s expiry, got %s", token.ExpiresIn)
	}
}
