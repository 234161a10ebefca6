package ise_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidwall/gjson"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

var errFetchFailed = errors.New("fetch failed")

// stubFetcher serves a fixed sequence of pages and records every call.
type stubFetcher struct {
	pages   []*ise.RestResponse
	calls   []ise.Cursor
	failOn  int
	fetched int
}

func (s *stubFetcher) FetchFirst(_ context.Context) (*ise.RestResponse, error) {
	return s.serve(ise.Cursor{})
}

func (s *stubFetcher) FetchNext(_ context.Context, cursor ise.Cursor) (*ise.RestResponse, error) {
	return s.serve(cursor)
}

func (s *stubFetcher) serve(cursor ise.Cursor) (*ise.RestResponse, error) {
	s.calls = append(s.calls, cursor)

	if s.failOn > 0 && len(s.calls) == s.failOn {
		return nil, errFetchFailed
	}

	page := s.pages[s.fetched]
	s.fetched++

	return page, nil
}

func linkPage(ids []string, next string) *ise.RestResponse {
	resources := ""
	for i, id := range ids {
		if i > 0 {
			resources += ","
		}

		resources += fmt.Sprintf(`{"id":%q,"name":"ep-%s"}`, id, id)
	}

	nextPart := ""
	if next != "" {
		nextPart = fmt.Sprintf(`,"nextPage":{"rel":"next","href":%q}`, next)
	}

	body := fmt.Sprintf(`{"SearchResult":{"total":10,"resources":[%s]%s}}`, resources, nextPart)

	return &ise.RestResponse{StatusCode: 200, Body: []byte(body), ContentType: "application/json"}
}

//nolint:funlen // Test functions can be longer for detailed testing
func TestPager_LinkMode(t *testing.T) {
	t.Parallel()
	t.Run("walks pages in order and stops at the last", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{
				linkPage([]string{"1", "2"}, "https://ise:9060/ers/config/endpoint?page=2"),
				linkPage([]string{"3"}, "https://ise:9060/ers/config/endpoint?page=3"),
				linkPage([]string{"4"}, ""),
			},
		}

		pager := ise.NewPager(fetcher, nil, 2)

		var ids []string

		err := pager.ForEach(context.Background(), func(item gjson.Result) error {
			ids = append(ids, item.Get("id").String())

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
		assert.False(t, pager.HasNext())
		require.Len(t, fetcher.calls, 3)

		// Each cursor points at the link from the previous page
		assert.Equal(t, "https://ise:9060/ers/config/endpoint?page=2", fetcher.calls[1].NextURL)
		assert.Equal(t, "https://ise:9060/ers/config/endpoint?page=3", fetcher.calls[2].NextURL)
	})

	t.Run("stopping after k pages issues exactly k fetches", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{
				linkPage([]string{"1"}, "next-2"),
				linkPage([]string{"2"}, "next-3"),
				linkPage([]string{"3"}, ""),
			},
		}

		pager := ise.NewPager(fetcher, nil, 1)

		_, err := pager.Next(context.Background())
		require.NoError(t, err)

		_, err = pager.Next(context.Background())
		require.NoError(t, err)

		assert.Len(t, fetcher.calls, 2)
		assert.True(t, pager.HasNext())
	})

	t.Run("error leaves the cursor unadvanced", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{
				linkPage([]string{"1"}, "next-2"),
				linkPage([]string{"2"}, ""),
			},
			failOn: 2,
		}

		pager := ise.NewPager(fetcher, nil, 1)

		_, err := pager.Next(context.Background())
		require.NoError(t, err)

		_, err = pager.Next(context.Background())
		require.ErrorIs(t, err, errFetchFailed)
		require.True(t, pager.HasNext())

		// Retrying fetches the same cursor again
		resp, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2", pager.Items(resp)[0].Get("id").String())
		assert.Equal(t, fetcher.calls[1].NextURL, fetcher.calls[2].NextURL)
		assert.False(t, pager.HasNext())
	})

	t.Run("empty first page terminates immediately", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{linkPage(nil, "")},
		}

		pager := ise.NewPager(fetcher, nil, 20)

		all, err := pager.All(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
		assert.False(t, pager.HasNext())
		assert.Len(t, fetcher.calls, 1)
	})
}

func numberPage(count int) *ise.RestResponse {
	items := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			items += ","
		}

		items += fmt.Sprintf(`{"id":"%d"}`, i)
	}

	return &ise.RestResponse{StatusCode: 200, Body: []byte(`{"items":[` + items + `]}`), ContentType: "application/json"}
}

func TestPager_NumberMode(t *testing.T) {
	t.Parallel()

	spec := &ise.PageSpec{Mode: ise.PageModeNumber, ItemsPath: "items"}

	t.Run("advances the page number while pages are full", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{numberPage(2), numberPage(2), numberPage(1)},
		}

		pager := ise.NewPager(fetcher, spec, 2)

		all, err := pager.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 5)
		require.Len(t, fetcher.calls, 3)
		assert.Equal(t, 2, fetcher.calls[1].NextPage)
		assert.Equal(t, 3, fetcher.calls[2].NextPage)
		assert.Equal(t, 2, fetcher.calls[1].Size)
	})

	t.Run("continues from the caller's start page", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{numberPage(2), numberPage(2), numberPage(0)},
		}

		pager := ise.NewPager(fetcher, spec, 2).StartAt(3)

		all, err := pager.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 4)
		require.Len(t, fetcher.calls, 3)
		assert.Equal(t, 4, fetcher.calls[1].NextPage)
		assert.Equal(t, 5, fetcher.calls[2].NextPage)
	})

	t.Run("start page is fixed once the walk begins", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{numberPage(2), numberPage(0)},
		}

		pager := ise.NewPager(fetcher, spec, 2)

		_, err := pager.Next(context.Background())
		require.NoError(t, err)

		pager.StartAt(7)

		_, err = pager.Next(context.Background())
		require.NoError(t, err)
		require.Len(t, fetcher.calls, 2)
		assert.Equal(t, 2, fetcher.calls[1].NextPage)
	})

	t.Run("short page is terminal", func(t *testing.T) {
		t.Parallel()

		fetcher := &stubFetcher{
			pages: []*ise.RestResponse{numberPage(1)},
		}

		pager := ise.NewPager(fetcher, spec, 2)

		_, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, pager.HasNext())
		assert.Len(t, fetcher.calls, 1)
	})
}

func TestPager_ForEachStopsOnCallbackError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")

	fetcher := &stubFetcher{
		pages: []*ise.RestResponse{
			linkPage([]string{"1", "2"}, "next-2"),
			linkPage([]string{"3"}, ""),
		},
	}

	pager := ise.NewPager(fetcher, nil, 2)

	seen := 0

	err := pager.ForEach(context.Background(), func(_ gjson.Result) error {
		seen++

		return errStop
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, seen)
	assert.Len(t, fetcher.calls, 1)
}
