package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorTable(t *testing.T) {
	t.Parallel()

	for name, desc := range operations {
		assert.Equal(t, name, desc.Operation, "table key and Operation must agree")
		assert.NotEmpty(t, desc.Method)
		assert.NotEmpty(t, desc.PathTemplate)
	}

	// Listing operations must declare pagination
	for _, name := range []string{"listEndpoints", "listIdentityGroups", "listNetworkDevices"} {
		desc, ok := Descriptor(name)
		require.True(t, ok)
		require.NotNil(t, desc.Page)
	}

	_, ok := Descriptor("listEverything")
	assert.False(t, ok)
}

func TestWrapPayload(t *testing.T) {
	t.Parallel()

	t.Run("bare payload gets the envelope", func(t *testing.T) {
		t.Parallel()

		wrapped := wrapPayload("ERSEndPoint", map[string]any{"mac": "AA:BB:CC:DD:EE:FF"})
		require.Contains(t, wrapped, "ERSEndPoint")

		inner, ok := wrapped["ERSEndPoint"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", inner["mac"])
	})

	t.Run("already enveloped payload passes through", func(t *testing.T) {
		t.Parallel()

		payload := map[string]any{
			"ERSEndPoint": map[string]any{"mac": "AA:BB:CC:DD:EE:FF"},
		}

		wrapped := wrapPayload("ERSEndPoint", payload)
		assert.Equal(t, payload, wrapped)
	})

	t.Run("envelope key plus siblings is wrapped again", func(t *testing.T) {
		t.Parallel()

		payload := map[string]any{
			"ERSEndPoint": map[string]any{"mac": "AA:BB:CC:DD:EE:FF"},
			"stray":       true,
		}

		wrapped := wrapPayload("ERSEndPoint", payload)

		inner, ok := wrapped["ERSEndPoint"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, inner, "stray")
	})
}
