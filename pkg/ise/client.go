package ise

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrNoCredentials       = errors.New("no credentials configured")
	ErrDeprecatedClient    = errors.New("use github.com/netpolicy-io/ise-client/pkg/iseclient.New to create a client")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrDescriptorRequired  = errors.New("endpoint descriptor is required")
	ErrNotPaginated        = errors.New("operation does not declare pagination")
	ErrSchemaNotFound      = errors.New("schema not found in catalog")
	ErrUnsupportedBodyKind = errors.New("unsupported body kind")
	ErrMissingPathParam    = errors.New("missing path parameter")
)

// EndpointsClient wraps the ERS endpoint resource.
type EndpointsClient interface {
	Get(ctx context.Context, id string) (*RestResponse, error)
	GetByName(ctx context.Context, name string) (*RestResponse, error)
	List(ctx context.Context, params *QueryParams) *Pager
	Create(ctx context.Context, payload map[string]any) (*RestResponse, error)
	Update(ctx context.Context, id string, payload map[string]any) (*RestResponse, error)
	Delete(ctx context.Context, id string) error
	BulkImport(ctx context.Context, filename string, csv []byte) (*RestResponse, error)
}

// IdentityGroupsClient wraps the ERS identity group resource.
type IdentityGroupsClient interface {
	Get(ctx context.Context, id string) (*RestResponse, error)
	List(ctx context.Context, params *QueryParams) *Pager
	Create(ctx context.Context, payload map[string]any) (*RestResponse, error)
	Update(ctx context.Context, id string, payload map[string]any) (*RestResponse, error)
	Delete(ctx context.Context, id string) error
}

// NetworkDevicesClient wraps the ERS network device resource.
type NetworkDevicesClient interface {
	Get(ctx context.Context, id string) (*RestResponse, error)
	GetByName(ctx context.Context, name string) (*RestResponse, error)
	List(ctx context.Context, params *QueryParams) *Pager
	Create(ctx context.Context, payload map[string]any) (*RestResponse, error)
	CreateXML(ctx context.Context, payload map[string]any) (*RestResponse, error)
	Update(ctx context.Context, id string, payload map[string]any) (*RestResponse, error)
	Delete(ctx context.Context, id string) error
}

// Invoker is the generic entry point into the request-execution pipeline.
// Facade methods supply a descriptor plus concrete argument values and
// perform no HTTP or schema logic themselves.
type Invoker interface {
	Invoke(ctx context.Context, desc *EndpointDescriptor, args *CallArgs) (*RestResponse, error)
	Paginate(ctx context.Context, desc *EndpointDescriptor, args *CallArgs) *Pager
}

// Client is the top-level ISE API client.
type Client interface {
	Invoker

	Endpoints() EndpointsClient
	IdentityGroups() IdentityGroupsClient
	NetworkDevices() NetworkDevicesClient

	// VersionInfo returns the ERS version information for the deployment.
	VersionInfo(ctx context.Context) (*RestResponse, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an ise.Client.
//
// # Authentication
//
// Provide either Username/Password (HTTP Basic, the ERS default) or
// AccessToken (Bearer). Credentials are resolved once at construction and
// treated as immutable for the client's lifetime; they are never logged.
//
// # Retries
//
// The transport retries connection errors, 429, and 5xx responses with
// exponential backoff and jitter, honoring Retry-After. POST requests are
// never retried unless RetryNonIdempotent is set, since a blind retry of a
// create risks duplicate side effects.
type Config struct {
	// BaseURL: base URL for the ISE ERS API (e.g. "https://ise.example.com:9060").
	BaseURL string

	// Username: account for HTTP Basic authentication.
	Username string
	// Password: password for HTTP Basic authentication.
	Password string
	// AccessToken: if set, sent as a Bearer token instead of Basic credentials.
	AccessToken string

	// SkipTLSVerify disables TLS certificate verification. Lab use only.
	SkipTLSVerify bool
	// Timeout: per-attempt HTTP timeout. Zero means the package default.
	Timeout time.Duration

	// RetryMax: maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// RetryBudget: ceiling on total elapsed time across attempts. Zero
	// means no elapsed-time ceiling beyond the context deadline.
	RetryBudget time.Duration
	// RetryNonIdempotent: opt-in to retrying POST requests.
	RetryNonIdempotent bool

	// UsesCSRF: fetch and send X-CSRF-TOKEN on mutating requests.
	UsesCSRF bool

	// ValidateResponses: schema-validate response bodies on operations
	// that declare a response schema.
	ValidateResponses bool

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// NewClient creates a new ISE API client
// Deprecated: Use github.com/netpolicy-io/ise-client/pkg/iseclient.New instead.
func NewClient(config *Config) (Client, error) {
	return nil, ErrDeprecatedClient
}
