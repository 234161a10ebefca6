//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// TestEndpointWorkflow_CompleteLifecycle creates, reads, updates and
// deletes an endpoint against a live deployment.
func TestEndpointWorkflow_CompleteLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()

	mac := GenerateTestMAC()

	// 1. Create
	created, err := client.Endpoints().Create(ctx, map[string]any{
		"name":        mac,
		"mac":         mac,
		"description": "integration test endpoint",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Headers.Get("Location"))

	defer func() {
		// Cleanup by name in case an earlier assertion failed
		resp, err := client.Endpoints().GetByName(ctx, mac)
		if err != nil {
			return
		}

		id := resp.Get("ERSEndPoint.id").String()
		_ = client.Endpoints().Delete(ctx, id)
	}()

	// 2. Read back by name
	fetched, err := client.Endpoints().GetByName(ctx, mac)
	require.NoError(t, err)

	id := fetched.Get("ERSEndPoint.id").String()
	require.NotEmpty(t, id)
	assert.Equal(t, mac, fetched.Get("ERSEndPoint.mac").String())

	// 3. Update the description
	_, err = client.Endpoints().Update(ctx, id, map[string]any{
		"id":          id,
		"mac":         mac,
		"description": "integration test endpoint (updated)",
	})
	require.NoError(t, err)

	updated, err := client.Endpoints().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "integration test endpoint (updated)",
		updated.Get("ERSEndPoint.description").String())

	// 4. Delete
	require.NoError(t, client.Endpoints().Delete(ctx, id))

	_, err = client.Endpoints().Get(ctx, id)
	assert.True(t, ise.IsNotFound(err))
}

// TestIdentityGroupWorkflow_CreateAndList verifies created groups show
// up in filtered listings.
func TestIdentityGroupWorkflow_CreateAndList(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()

	name := GenerateTestName("itest-group")

	created, err := client.IdentityGroups().Create(ctx, map[string]any{
		"name":        name,
		"description": "integration test group",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Headers.Get("Location"))

	params := ise.NewQueryParams().WithFilter("name.EQUALS." + name)

	items, err := client.IdentityGroups().List(ctx, params).All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, name, items[0].Get("name").String())

	// Cleanup
	_ = client.IdentityGroups().Delete(ctx, items[0].Get("id").String())
}

// TestPaginationWorkflow_WalksAllPages lists endpoints with a small page
// size and checks the walk terminates with no duplicate IDs.
func TestPaginationWorkflow_WalksAllPages(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()

	seen := make(map[string]bool)

	pager := client.Endpoints().List(ctx, ise.NewQueryParams().WithSize(2))
	for pager.HasNext() {
		page, err := pager.Next(ctx)
		require.NoError(t, err)

		for _, item := range pager.Items(page) {
			id := item.Get("id").String()
			assert.False(t, seen[id], "endpoint %s returned twice", id)
			seen[id] = true
		}
	}
}

// TestVersionInfo_Reachable is the cheapest liveness check for the
// configured deployment.
func TestVersionInfo_Reachable(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)

	resp, err := client.VersionInfo(context.Background())
	require.NoError(t, err)

	var info ise.VersionInfo
	require.NoError(t, resp.Decode(&info))
	assert.NotEmpty(t, info.CurrentServerVersion)
}
