package ise

import "net/http"

// BodyKind selects the request body encoding for an operation.
type BodyKind int

const (
	// BodyNone means the operation carries no request body.
	BodyNone BodyKind = iota

	// BodyJSON marshals the payload as application/json. The default.
	BodyJSON

	// BodyXML converts the payload tree to an XML document.
	BodyXML

	// BodyMultipart assembles multipart/form-data from named parts.
	BodyMultipart
)

// PaginationMode selects how an operation signals the next page.
type PaginationMode int

const (
	// PageModeLink follows a next-page URL found at PageSpec.CursorPath.
	PageModeLink PaginationMode = iota

	// PageModeNumber increments the page query parameter until a page
	// comes back shorter than the requested size.
	PageModeNumber
)

// PageSpec declares how a listing operation paginates. The cursor format
// is endpoint-specific, never a global constant.
type PageSpec struct {
	Mode PaginationMode

	// CursorPath is the gjson path to the next-page URL or token.
	CursorPath string

	// ItemsPath is the gjson path to the page's resource array.
	ItemsPath string
}

// DefaultPageSpec paginates via the standard ERS SearchResult envelope.
func DefaultPageSpec() *PageSpec {
	return &PageSpec{
		Mode:       PageModeLink,
		CursorPath: "SearchResult.nextPage.href",
		ItemsPath:  "SearchResult.resources",
	}
}

// EndpointDescriptor is the static metadata describing one remote
// operation's shape and contracts. Descriptors are built once at process
// start and shared read-only by all calls.
type EndpointDescriptor struct {
	// Operation is the stable operation name, e.g. "createEndpoint".
	Operation string

	// Method is the HTTP method.
	Method string

	// PathTemplate is the resource path with {param} placeholders,
	// e.g. "/ers/config/endpoint/{id}".
	PathTemplate string

	// Body selects the request body encoding.
	Body BodyKind

	// MediaType is the default ERS-Media-Type header value, if any.
	MediaType string

	// RequestSchema is the catalog ID of the request body schema.
	// Empty means the request body is not validated.
	RequestSchema string

	// ResponseSchemas maps status codes to catalog schema IDs. Statuses
	// without an entry fall back to the generic success/error split.
	ResponseSchemas map[int]string

	// Page declares pagination for listing operations; nil otherwise.
	Page *PageSpec

	// XMLRoot names the document root for BodyXML payloads.
	XMLRoot string
}

// Idempotent reports whether blind retry of the operation is safe.
// POST is the only non-idempotent method the ERS API uses.
func (d *EndpointDescriptor) Idempotent() bool {
	return d.Method != http.MethodPost
}

// Part is one part of a multipart request body.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// CallArgs carries the concrete argument values for one invocation of an
// endpoint. Owned exclusively by the call that built it.
type CallArgs struct {
	// PathParams resolves the {param} placeholders of the path template.
	PathParams map[string]string

	// Query carries the query parameters.
	Query *QueryParams

	// Headers are caller-supplied headers. They override defaults except
	// Content-Type, which is fixed by the body encoding.
	Headers map[string]string

	// Payload is the request body for JSON and XML operations.
	Payload map[string]any

	// Parts are the multipart parts for BodyMultipart operations.
	Parts []Part
}
