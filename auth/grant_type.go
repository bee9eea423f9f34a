package auth

import (
	"fmt"
	"strings"
)

// GrantType is an OAuth2 grant type per RFC 6749 (plus device code from
// RFC 8628).
type GrantType string

const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypePassword          GrantType = "password"
	GrantTypeImplicit          GrantType = "implicit"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypeDeviceCode        GrantType = "device_code"
)

func (g GrantType) Valid() bool {
	switch g {
	case GrantTypeAuthorizationCode,
		GrantTypeClientCredentials,
		GrantTypePassword,
		GrantTypeImplicit,
		GrantTypeRefreshToken,
		GrantTypeDeviceCode:
		return true
	default:
		return false
	}
}

func (g GrantType) String() string {
	return string(g)
}

func ParseGrantType(value string) (GrantType, error) {
	g := GrantType(strings.ToLower(strings.TrimSpace(value)))
	if !g.Valid() {
		return "", fmt.Errorf("auth: invalid grant type %q", value)
	}
	return g, nil
}

// ResponseType is an OAuth2 authorization response type.
type ResponseType string

const (
	ResponseTypeCode  ResponseType = "code"
	ResponseTypeToken ResponseType = "token"
)

func (r ResponseType) Valid() bool {
	switch r {
	case ResponseTypeCode, ResponseTypeToken:
		return true
	default:
		return false
	}
}

func (r ResponseType) String() string {
	return string(r)
}

func ParseResponseType(value string) (ResponseType, error) {
	r := ResponseType(strings.ToLower(strings.TrimSpace(value)))
	if !r.Valid() {
		return "", fmt.Errorf("auth: invalid response type %q", value)
	}
	return r, nil
}
