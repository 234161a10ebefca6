// Package iseclient provides the main entry point for creating Cisco ISE ERS API clients
package iseclient

import (
	"fmt"
	"strings"

	"github.com/netpolicy-io/ise-client/internal/client"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// New creates a new Cisco ISE ERS API client from the given configuration.
func New(config *ise.Config) (ise.Client, error) {
	if config == nil {
		return nil, ise.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ise.ErrBaseURLRequired
	}

	// Normalize the base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	// Use the internal client implementation
	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithPassword creates a new client using basic authentication.
func NewWithPassword(baseURL, username, password string) (ise.Client, error) {
	return New(&ise.Config{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
	})
}

// NewWithToken creates a new client using a bearer access token.
func NewWithToken(baseURL, token string) (ise.Client, error) {
	return New(&ise.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}
