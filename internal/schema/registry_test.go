package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpolicy-io/ise-client/internal/schema"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

func TestRegistry_Has(t *testing.T) {
	t.Parallel()

	registry := schema.Default()

	for _, id := range []string{
		"endpoint.create",
		"endpoint.update",
		"identitygroup.create",
		"identitygroup.update",
		"networkdevice.create",
		"networkdevice.update",
		"searchresult",
		"versioninfo",
	} {
		assert.True(t, registry.Has(id), "catalog should declare %s", id)
	}

	assert.False(t, registry.Has("endpoint.destroy"))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	registry := schema.Default()

	t.Run("valid endpoint payload", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("endpoint.create", map[string]any{
			"ERSEndPoint": map[string]any{
				"name":                  "laptop-042",
				"mac":                   "AA:BB:CC:DD:EE:FF",
				"staticGroupAssignment": true,
				"groupId":               "aa13bb40-8bff-11e6-996c-525400b48521",
			},
		})
		require.NoError(t, err)
	})

	t.Run("missing required mac", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("endpoint.create", map[string]any{
			"ERSEndPoint": map[string]any{"name": "laptop-042"},
		})
		require.Error(t, err)

		var validationErr *ise.ValidationError

		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "endpoint.create", validationErr.SchemaID)
		require.NotEmpty(t, validationErr.Failures)
		assert.Contains(t, validationErr.Failures[0], "mac")
	})

	t.Run("malformed mac address", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("endpoint.create", map[string]any{
			"ERSEndPoint": map[string]any{"mac": "not-a-mac"},
		})
		require.Error(t, err)
		assert.True(t, ise.IsValidation(err))
	})

	t.Run("unexpected field rejected", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("endpoint.create", map[string]any{
			"ERSEndPoint": map[string]any{
				"mac":      "AA:BB:CC:DD:EE:FF",
				"surprise": "value",
			},
		})
		require.Error(t, err)
	})

	t.Run("every failure is listed", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("networkdevice.create", map[string]any{
			"NetworkDevice": map[string]any{"description": "no name, no IP list"},
		})
		require.Error(t, err)

		var validationErr *ise.ValidationError

		require.ErrorAs(t, err, &validationErr)
		assert.GreaterOrEqual(t, len(validationErr.Failures), 2)
	})

	t.Run("unknown schema ID", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("no.such.schema", map[string]any{})
		require.ErrorIs(t, err, ise.ErrSchemaNotFound)
	})

	t.Run("search result envelope", func(t *testing.T) {
		t.Parallel()

		err := registry.Validate("searchresult", map[string]any{
			"SearchResult": map[string]any{
				"total": 1,
				"resources": []any{
					map[string]any{"id": "a", "name": "one"},
				},
			},
		})
		require.NoError(t, err)
	})
}
