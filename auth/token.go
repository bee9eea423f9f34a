package auth

import "time"

// DefaultGracePeriod is subtracted from a token's expiry so callers renew
// before the provider actually rejects it.
const DefaultGracePeriod = 60 * time.Second

// Token is an immutable OAuth2 token snapshot.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Scopes       []string
	CreatedAt    time.Time
	ExpiresIn    time.Duration
	GracePeriod  time.Duration
}

func (t Token) gracePeriod() time.Duration {
	if t.GracePeriod > 0 {
		return t.GracePeriod
	}
	return DefaultGracePeriod
}

// ExpiresAt returns the moment the token expires. The second return is
// false when the token carries no expiry.
func (t Token) ExpiresAt() (time.Time, bool) {
	if t.ExpiresIn <= 0 {
		return time.Time{}, false
	}
	return t.CreatedAt.Add(t.ExpiresIn), true
}

// Expired reports whether now falls inside the grace window before expiry
// or beyond it. Tokens without expiry never expire.
func (t Token) Expired(now time.Time) bool {
	expiresAt, ok := t.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(expiresAt.Add(-t.gracePeriod()))
}

// Revoked reports whether the token has been cleared of its access token.
func (t Token) Revoked() bool {
	return t.AccessToken == ""
}

// Valid reports whether the token can authenticate a request at now.
func (t Token) Valid(now time.Time) bool {
	return !t.Revoked() && !t.Expired(now)
}
