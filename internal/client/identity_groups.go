package client

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/invoke"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// IdentityGroupsClient implements ise.IdentityGroupsClient.
type IdentityGroupsClient struct {
	invoker *invoke.Invoker
}

// Get implements ise.IdentityGroupsClient.Get.
func (c *IdentityGroupsClient) Get(ctx context.Context, id string) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getIdentityGroup")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return nil, fmt.Errorf("getting identity group: %w", err)
	}

	return resp, nil
}

// List implements ise.IdentityGroupsClient.List.
func (c *IdentityGroupsClient) List(ctx context.Context, params *ise.QueryParams) *ise.Pager {
	desc, _ := Descriptor("listIdentityGroups")

	return c.invoker.Paginate(ctx, desc, &ise.CallArgs{Query: params})
}

// Create implements ise.IdentityGroupsClient.Create.
func (c *IdentityGroupsClient) Create(ctx context.Context, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("createIdentityGroup")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		Payload: wrapPayload("EndPointGroup", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("creating identity group: %w", err)
	}

	return resp, nil
}

// Update implements ise.IdentityGroupsClient.Update.
func (c *IdentityGroupsClient) Update(ctx context.Context, id string, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("updateIdentityGroup")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
		Payload:    wrapPayload("EndPointGroup", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("updating identity group: %w", err)
	}

	return resp, nil
}

// Delete implements ise.IdentityGroupsClient.Delete.
func (c *IdentityGroupsClient) Delete(ctx context.Context, id string) error {
	desc, _ := Descriptor("deleteIdentityGroup")

	_, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return fmt.Errorf("deleting identity group: %w", err)
	}

	return nil
}
