package ise

import (
	"net/url"
	"strconv"
)

// QueryParams represents the ERS query parameters shared by listing
// operations. Filter is repeatable: each entry serializes as its own
// filter= query entry.
type QueryParams struct {
	Page       int
	Size       int
	SortAsc    string
	SortDsc    string
	Filter     []string
	FilterType string

	// Extra holds endpoint-specific parameters passed through verbatim.
	Extra map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithPage sets the page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithSize sets the page size.
func (q *QueryParams) WithSize(size int) *QueryParams {
	q.Size = size

	return q
}

// WithFilter appends a filter triplet (e.g. "name.CONTAINS.guest").
func (q *QueryParams) WithFilter(filter string) *QueryParams {
	q.Filter = append(q.Filter, filter)

	return q
}

// WithFilterType sets how multiple filters combine ("and" or "or").
func (q *QueryParams) WithFilterType(filterType string) *QueryParams {
	q.FilterType = filterType

	return q
}

// WithSortAsc sets the ascending sort field.
func (q *QueryParams) WithSortAsc(field string) *QueryParams {
	q.SortAsc = field

	return q
}

// WithSortDsc sets the descending sort field.
func (q *QueryParams) WithSortDsc(field string) *QueryParams {
	q.SortDsc = field

	return q
}

// Set stores an endpoint-specific parameter, replacing prior values.
func (q *QueryParams) Set(key, value string) *QueryParams {
	if q.Extra == nil {
		q.Extra = make(map[string][]string)
	}

	q.Extra[key] = []string{value}

	return q
}

// Add appends an endpoint-specific parameter value under key.
func (q *QueryParams) Add(key, value string) *QueryParams {
	if q.Extra == nil {
		q.Extra = make(map[string][]string)
	}

	q.Extra[key] = append(q.Extra[key], value)

	return q
}

// ToValues converts the parameters to url.Values per the ERS conventions:
// numbers render in decimal, repeated filters stay repeated.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Size > 0 {
		values.Set("size", strconv.Itoa(q.Size))
	}

	if q.SortAsc != "" {
		values.Set("sortasc", q.SortAsc)
	}

	if q.SortDsc != "" {
		values.Set("sortdsc", q.SortDsc)
	}

	for _, filter := range q.Filter {
		values.Add("filter", filter)
	}

	if q.FilterType != "" {
		values.Set("filtertype", q.FilterType)
	}

	for key, vals := range q.Extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	return values
}
