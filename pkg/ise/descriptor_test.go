package ise_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

func TestEndpointDescriptor_Idempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   bool
	}{
		{http.MethodGet, true},
		{http.MethodPut, true},
		{http.MethodDelete, true},
		{http.MethodPost, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			desc := &ise.EndpointDescriptor{Method: tt.method}
			assert.Equal(t, tt.want, desc.Idempotent())
		})
	}
}

func TestDefaultPageSpec(t *testing.T) {
	t.Parallel()

	spec := ise.DefaultPageSpec()
	assert.Equal(t, ise.PageModeLink, spec.Mode)
	assert.Equal(t, "SearchResult.nextPage.href", spec.CursorPath)
	assert.Equal(t, "SearchResult.resources", spec.ItemsPath)
}
