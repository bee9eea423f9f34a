// Package auth holds the OAuth2 configuration value object, its grant and
// response type enums, the token value object, and a client-credentials
// token source. Client secrets are registered with the logging mask registry
// so they never appear in log output.
package auth
