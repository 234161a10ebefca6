package ise_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

//nolint:funlen // Test functions can be longer for detailed testing
func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *ise.QueryParams
		expected url.Values
	}{
		{
			name:     "empty params",
			params:   ise.NewQueryParams(),
			expected: url.Values{},
		},
		{
			name:     "nil receiver",
			params:   nil,
			expected: url.Values{},
		},
		{
			name: "with pagination",
			params: &ise.QueryParams{
				Page: 2,
				Size: 50,
			},
			expected: url.Values{
				"page": []string{"2"},
				"size": []string{"50"},
			},
		},
		{
			name: "with sorting",
			params: &ise.QueryParams{
				SortAsc: "name",
				SortDsc: "mac",
			},
			expected: url.Values{
				"sortasc": []string{"name"},
				"sortdsc": []string{"mac"},
			},
		},
		{
			name: "single filter",
			params: &ise.QueryParams{
				Filter: []string{"name.CONTAINS.guest"},
			},
			expected: url.Values{
				"filter": []string{"name.CONTAINS.guest"},
			},
		},
		{
			name: "repeated filters stay repeated",
			params: &ise.QueryParams{
				Filter:     []string{"name.CONTAINS.guest", "mac.EQ.AA:BB:CC:DD:EE:FF"},
				FilterType: "or",
			},
			expected: url.Values{
				"filter":     []string{"name.CONTAINS.guest", "mac.EQ.AA:BB:CC:DD:EE:FF"},
				"filtertype": []string{"or"},
			},
		},
		{
			name: "with extra parameters",
			params: ise.NewQueryParams().
				Set("sgt", "16").
				Add("tag", "a").
				Add("tag", "b"),
			expected: url.Values{
				"sgt": []string{"16"},
				"tag": []string{"a", "b"},
			},
		},
		{
			name: "zero page and size omitted",
			params: &ise.QueryParams{
				Page: 0,
				Size: 0,
			},
			expected: url.Values{},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.params.ToValues())
		})
	}
}

func TestQueryParams_Fluent(t *testing.T) {
	t.Parallel()

	params := ise.NewQueryParams().
		WithPage(3).
		WithSize(25).
		WithFilter("name.STARTSW.lab").
		WithFilter("description.CONTAINS.printer").
		WithFilterType("and").
		WithSortAsc("name")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Size)
	assert.Len(t, params.Filter, 2)
	assert.Equal(t, "and", params.FilterType)
	assert.Equal(t, "name", params.SortAsc)

	values := params.ToValues()
	assert.Equal(t, []string{"name.STARTSW.lab", "description.CONTAINS.printer"}, values["filter"])
}
