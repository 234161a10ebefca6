// Package auth resolves client credentials into request decorators.
// Credentials are resolved once at client construction and treated as
// immutable configuration for the client's lifetime.
package auth

import (
	"net/http"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// ErrNoCredentials mirrors the public sentinel so callers can match it
// without importing this package.
var ErrNoCredentials = ise.ErrNoCredentials

// Credential injects authentication into an outgoing request.
type Credential interface {
	// Apply sets the Authorization header on req.
	Apply(req *http.Request)

	// Describe returns a loggable description carrying no secrets.
	Describe() string
}

// BasicCredential authenticates with HTTP Basic, the ERS default.
type BasicCredential struct {
	Username string
	Password string
}

// Apply implements Credential.
func (c *BasicCredential) Apply(req *http.Request) {
	req.SetBasicAuth(c.Username, c.Password)
}

// Describe implements Credential.
func (c *BasicCredential) Describe() string {
	return "basic:" + c.Username
}

// BearerCredential authenticates with a static bearer token.
type BearerCredential struct {
	Token string
}

// Apply implements Credential.
func (c *BearerCredential) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.Token)
}

// Describe implements Credential.
func (c *BearerCredential) Describe() string {
	return "bearer"
}

// Resolve picks the credential for the given settings. Token wins over
// basic credentials when both are present.
func Resolve(username, password, token string) (Credential, error) {
	if token != "" {
		return &BearerCredential{Token: token}, nil
	}

	if username != "" && password != "" {
		return &BasicCredential{Username: username, Password: password}, nil
	}

	return nil, ErrNoCredentials
}
