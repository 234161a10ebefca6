package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 60 * time.Second

	// ShortHTTPTimeout is used for quick operations such as the
	// version-info probe.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination limits.
const (
	// DefaultPageSize is the ERS default number of items per page.
	DefaultPageSize = 20

	// MaxPageSize is the largest page size the ERS API accepts.
	MaxPageSize = 100
)

// ERS protocol paths and headers.
const (
	// VersionInfoPath serves deployment version info and CSRF tokens.
	VersionInfoPath = "/ers/config/versioninfo"

	// CSRFHeader carries the CSRF token on mutating requests.
	CSRFHeader = "X-CSRF-TOKEN"

	// CSRFFetchValue requests a fresh CSRF token.
	CSRFFetchValue = "fetch"

	// MediaTypeHeader selects the ERS resource media version.
	MediaTypeHeader = "ERS-Media-Type"

	// RequestIDHeader correlates attempts in debug logs.
	RequestIDHeader = "X-Request-ID"
)
