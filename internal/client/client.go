// Package client implements the concrete ise.Client: it wires the
// transport, schema registry, and invoker together and exposes the
// per-resource facades.
package client

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/auth"
	isehttp "github.com/netpolicy-io/ise-client/internal/http"
	"github.com/netpolicy-io/ise-client/internal/invoke"
	"github.com/netpolicy-io/ise-client/internal/schema"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// Client implements the ise.Client interface.
type Client struct {
	httpClient *isehttp.Client
	invoker    *invoke.Invoker
	baseURL    string
	logger     ise.Logger

	endpoints      ise.EndpointsClient
	identityGroups ise.IdentityGroupsClient
	networkDevices ise.NetworkDevicesClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *ise.Config) []isehttp.Option {
	var httpOpts []isehttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, isehttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, isehttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, isehttp.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, isehttp.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		waitMax := config.RetryWaitMax

		httpOpts = append(httpOpts, isehttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.RetryBudget > 0 {
		httpOpts = append(httpOpts, isehttp.WithRetryBudget(config.RetryBudget))
	}

	if config.RetryNonIdempotent {
		httpOpts = append(httpOpts, isehttp.WithRetryNonIdempotent(true))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, isehttp.WithSkipTLSVerify(true))
	}

	if config.UsesCSRF {
		httpOpts = append(httpOpts, isehttp.WithCSRF(true))
	}

	return httpOpts
}

// New creates a new ISE API client.
func New(config *ise.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ise.ErrBaseURLRequired
	}

	credential, err := auth.Resolve(config.Username, config.Password, config.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("resolving credentials: %w", err)
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := isehttp.NewClient(config.BaseURL, credential, httpOpts...)
	invoker := invoke.New(httpClient, schema.Default(), config.ValidateResponses)

	client := &Client{
		httpClient: httpClient,
		invoker:    invoker,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	client.endpoints = &EndpointsClient{invoker: invoker}
	client.identityGroups = &IdentityGroupsClient{invoker: invoker}
	client.networkDevices = &NetworkDevicesClient{invoker: invoker}

	return client, nil
}

// Invoke implements ise.Invoker.
func (c *Client) Invoke(ctx context.Context, desc *ise.EndpointDescriptor, args *ise.CallArgs) (*ise.RestResponse, error) {
	return c.invoker.Invoke(ctx, desc, args)
}

// Paginate implements ise.Invoker.
func (c *Client) Paginate(ctx context.Context, desc *ise.EndpointDescriptor, args *ise.CallArgs) *ise.Pager {
	return c.invoker.Paginate(ctx, desc, args)
}

// InvokeOperation runs a named operation from the descriptor table.
func (c *Client) InvokeOperation(ctx context.Context, operation string, args *ise.CallArgs) (*ise.RestResponse, error) {
	desc, ok := Descriptor(operation)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ise.ErrUnknownOperation, operation)
	}

	return c.invoker.Invoke(ctx, desc, args)
}

// Endpoints implements ise.Client.Endpoints.
func (c *Client) Endpoints() ise.EndpointsClient {
	return c.endpoints
}

// IdentityGroups implements ise.Client.IdentityGroups.
func (c *Client) IdentityGroups() ise.IdentityGroupsClient {
	return c.identityGroups
}

// NetworkDevices implements ise.Client.NetworkDevices.
func (c *Client) NetworkDevices() ise.NetworkDevicesClient {
	return c.networkDevices
}

// VersionInfo implements ise.Client.VersionInfo.
func (c *Client) VersionInfo(ctx context.Context) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getVersionInfo")

	resp, err := c.invoker.Invoke(ctx, desc, nil)
	if err != nil {
		return nil, fmt.Errorf("getting version info: %w", err)
	}

	return resp, nil
}

// loggerAdapter adapts ise.Logger to the transport logger.
type loggerAdapter struct {
	logger ise.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
