package ise_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

func TestRestResponse_Queries(t *testing.T) {
	t.Parallel()

	resp := &ise.RestResponse{
		StatusCode:  200,
		Headers:     http.Header{"Content-Type": []string{"application/json"}},
		Body:        []byte(`{"ERSEndPoint":{"id":"abc","name":"printer-1","customAttributes":{"customAttributes":{"floor":"3"}}}}`),
		ContentType: "application/json",
	}

	assert.True(t, resp.IsJSON())
	assert.Equal(t, "printer-1", resp.Get("ERSEndPoint.name").String())
	assert.Equal(t, "3", resp.Get("ERSEndPoint.customAttributes.customAttributes.floor").String())
	assert.False(t, resp.Get("ERSEndPoint.missing").Exists())
	assert.True(t, resp.JSON().IsObject())
}

func TestRestResponse_Decode(t *testing.T) {
	t.Parallel()

	resp := &ise.RestResponse{
		Body:        []byte(`{"SearchResult":{"total":2,"resources":[{"id":"a","name":"one"},{"id":"b","name":"two","link":{"rel":"self","href":"https://ise:9060/ers/config/endpoint/b"}}],"nextPage":{"rel":"next","href":"https://ise:9060/ers/config/endpoint?page=2"}}}`),
		ContentType: "application/json",
	}

	var envelope ise.SearchResultEnvelope

	require.NoError(t, resp.Decode(&envelope))
	assert.Equal(t, 2, envelope.SearchResult.Total)
	require.Len(t, envelope.SearchResult.Resources, 2)
	assert.Equal(t, "one", envelope.SearchResult.Resources[0].Name)
	require.NotNil(t, envelope.SearchResult.Resources[1].Link)
	require.NotNil(t, envelope.SearchResult.NextPage)
	assert.Contains(t, envelope.SearchResult.NextPage.Href, "page=2")
}

func TestRestResponse_DecodeFailure(t *testing.T) {
	t.Parallel()

	resp := &ise.RestResponse{
		Body:        []byte(`not json`),
		ContentType: "text/html",
	}

	var envelope ise.SearchResultEnvelope

	err := resp.Decode(&envelope)
	require.Error(t, err)

	var decodeErr *ise.DecodeError

	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "text/html", decodeErr.ContentType)
	assert.False(t, resp.IsJSON())
}
