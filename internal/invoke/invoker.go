// Package invoke implements the request-execution pipeline: it takes an
// endpoint descriptor plus concrete argument values, validates the
// payload, builds the HTTP request, executes it through the transport,
// and interprets the response. Resource facades contain no HTTP or
// schema logic of their own; they all funnel through Invoke.
package invoke

import (
	"context"
	"net/http"

	"github.com/netpolicy-io/ise-client/internal/constants"
	isehttp "github.com/netpolicy-io/ise-client/internal/http"
	"github.com/netpolicy-io/ise-client/internal/schema"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// Invoker executes logical operations against the ERS API. Safe for
// concurrent use: the schema registry is read-only after initialization
// and the transport shares only its connection pool.
type Invoker struct {
	http              *isehttp.Client
	schemas           *schema.Registry
	validateResponses bool
}

// New creates an Invoker on top of the given transport.
func New(httpClient *isehttp.Client, registry *schema.Registry, validateResponses bool) *Invoker {
	if registry == nil {
		registry = schema.Default()
	}

	return &Invoker{
		http:              httpClient,
		schemas:           registry,
		validateResponses: validateResponses,
	}
}

// Invoke runs one logical call through the pipeline. Outgoing validation
// failures abort before any network I/O.
func (i *Invoker) Invoke(ctx context.Context, desc *ise.EndpointDescriptor, args *ise.CallArgs) (*ise.RestResponse, error) {
	if desc == nil {
		return nil, ise.ErrDescriptorRequired
	}

	if args == nil {
		args = &ise.CallArgs{}
	}

	if desc.RequestSchema != "" && desc.Body != ise.BodyMultipart {
		err := i.schemas.Validate(desc.RequestSchema, args.Payload)
		if err != nil {
			return nil, err
		}
	}

	req, err := buildRequest(desc, args)
	if err != nil {
		return nil, err
	}

	raw, err := i.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	return i.process(desc, raw)
}

// Paginate starts a lazy walk over a listing operation. No request is
// issued until the consumer pulls the first page, and none after the
// consumer stops; the context is supplied per fetch via Pager.Next.
func (i *Invoker) Paginate(_ context.Context, desc *ise.EndpointDescriptor, args *ise.CallArgs) *ise.Pager {
	if args == nil {
		args = &ise.CallArgs{}
	}

	size := constants.DefaultPageSize
	if args.Query != nil && args.Query.Size > 0 {
		size = args.Query.Size
	}

	fetcher := &pageFetcher{invoker: i, desc: desc, args: args}

	pager := ise.NewPager(fetcher, desc.Page, size)
	if args.Query != nil {
		pager.StartAt(args.Query.Page)
	}

	return pager
}

// pageFetcher adapts the pipeline to the pagination walker.
type pageFetcher struct {
	invoker *Invoker
	desc    *ise.EndpointDescriptor
	args    *ise.CallArgs
}

// FetchFirst implements ise.PageFetcher.
func (f *pageFetcher) FetchFirst(ctx context.Context) (*ise.RestResponse, error) {
	if f.desc.Page == nil {
		return nil, ise.ErrNotPaginated
	}

	return f.invoker.Invoke(ctx, f.desc, f.args)
}

// FetchNext implements ise.PageFetcher.
func (f *pageFetcher) FetchNext(ctx context.Context, cursor ise.Cursor) (*ise.RestResponse, error) {
	spec := f.desc.Page
	if spec == nil {
		return nil, ise.ErrNotPaginated
	}

	if spec.Mode == ise.PageModeNumber {
		args := f.cloneArgsWithPage(cursor.NextPage, cursor.Size)

		return f.invoker.Invoke(ctx, f.desc, args)
	}

	raw, err := f.invoker.http.DoURL(ctx, http.MethodGet, cursor.NextURL)
	if err != nil {
		return nil, err
	}

	return f.invoker.process(f.desc, raw)
}

func (f *pageFetcher) cloneArgsWithPage(page, size int) *ise.CallArgs {
	query := &ise.QueryParams{}
	if f.args.Query != nil {
		copied := *f.args.Query
		query = &copied
	}

	query.Page = page
	query.Size = size

	return &ise.CallArgs{
		PathParams: f.args.PathParams,
		Query:      query,
		Headers:    f.args.Headers,
	}
}
