package ise

import (
	"context"

	"github.com/tidwall/gjson"
)

// Cursor points at where to resume in a paginated listing. A cursor only
// ever references pages derived from responses already fetched.
type Cursor struct {
	// NextURL is the next-page URL for PageModeLink walks.
	NextURL string

	// NextPage and Size drive PageModeNumber walks.
	NextPage int
	Size     int
}

// PageFetcher fetches pages on behalf of a Pager. Implemented by the
// request-execution pipeline; one network call per fetch.
type PageFetcher interface {
	// FetchFirst fetches the first page of the walk.
	FetchFirst(ctx context.Context) (*RestResponse, error)

	// FetchNext fetches the page the cursor points at.
	FetchNext(ctx context.Context, cursor Cursor) (*RestResponse, error)
}

// Pager walks a paginated listing lazily: pages are fetched only when the
// consumer asks for them, so stopping early issues no further requests.
// A Pager is forward-only and not safe for concurrent use; create one per
// walk.
type Pager struct {
	fetcher PageFetcher
	spec    *PageSpec

	cursor  Cursor
	started bool
	done    bool
}

// NewPager creates a Pager over fetcher using the descriptor's page
// specification. A nil spec falls back to the ERS SearchResult envelope.
func NewPager(fetcher PageFetcher, spec *PageSpec, size int) *Pager {
	if spec == nil {
		spec = DefaultPageSpec()
	}

	return &Pager{
		fetcher: fetcher,
		spec:    spec,
		cursor:  Cursor{NextPage: 1, Size: size},
	}
}

// StartAt positions a PageModeNumber walk at the given page, so a walk
// whose first fetch requests page N continues with N+1 rather than
// regressing to 2. No effect once the walk has started.
func (p *Pager) StartAt(page int) *Pager {
	if !p.started && page > 0 {
		p.cursor.NextPage = page
	}

	return p
}

// HasNext reports whether another page may be available. True before the
// first fetch; false once the walk is exhausted.
func (p *Pager) HasNext() bool {
	return !p.done
}

// Next fetches the next page. A failed fetch leaves the cursor where it
// was, so pages already returned stay valid and the fetch can be retried.
// Returns ErrNotPaginated via the fetcher when misconfigured.
func (p *Pager) Next(ctx context.Context) (*RestResponse, error) {
	var (
		resp *RestResponse
		err  error
	)

	if !p.started {
		resp, err = p.fetcher.FetchFirst(ctx)
	} else {
		resp, err = p.fetcher.FetchNext(ctx, p.cursor)
	}

	if err != nil {
		return nil, err
	}

	p.started = true
	p.advance(resp)

	return resp, nil
}

// Items extracts the page's resource entries per the descriptor's items
// path.
func (p *Pager) Items(resp *RestResponse) []gjson.Result {
	return resp.Get(p.spec.ItemsPath).Array()
}

// advance derives the cursor for the following page, or marks the walk
// exhausted. Once exhausted the state is terminal.
func (p *Pager) advance(resp *RestResponse) {
	switch p.spec.Mode {
	case PageModeNumber:
		items := resp.Get(p.spec.ItemsPath).Array()
		if len(items) == 0 || (p.cursor.Size > 0 && len(items) < p.cursor.Size) {
			p.done = true

			return
		}

		p.cursor.NextPage++
	case PageModeLink:
		next := resp.Get(p.spec.CursorPath).String()
		if next == "" {
			p.done = true

			return
		}

		p.cursor.NextURL = next
	}
}

// ForEach walks every remaining item, stopping on the first error from fn.
func (p *Pager) ForEach(ctx context.Context, fn func(item gjson.Result) error) error {
	for p.HasNext() {
		page, err := p.Next(ctx)
		if err != nil {
			return err
		}

		for _, item := range p.Items(page) {
			err := fn(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// All aggregates every remaining item into one slice.
func (p *Pager) All(ctx context.Context) ([]gjson.Result, error) {
	var all []gjson.Result

	err := p.ForEach(ctx, func(item gjson.Result) error {
		all = append(all, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return all, nil
}
