package client

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/invoke"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// NetworkDevicesClient implements ise.NetworkDevicesClient.
type NetworkDevicesClient struct {
	invoker *invoke.Invoker
}

// Get implements ise.NetworkDevicesClient.Get.
func (c *NetworkDevicesClient) Get(ctx context.Context, id string) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getNetworkDevice")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return nil, fmt.Errorf("getting network device: %w", err)
	}

	return resp, nil
}

// GetByName implements ise.NetworkDevicesClient.GetByName.
func (c *NetworkDevicesClient) GetByName(ctx context.Context, name string) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getNetworkDeviceByName")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"name": name},
	})
	if err != nil {
		return nil, fmt.Errorf("getting network device by name: %w", err)
	}

	return resp, nil
}

// List implements ise.NetworkDevicesClient.List.
func (c *NetworkDevicesClient) List(ctx context.Context, params *ise.QueryParams) *ise.Pager {
	desc, _ := Descriptor("listNetworkDevices")

	return c.invoker.Paginate(ctx, desc, &ise.CallArgs{Query: params})
}

// Create implements ise.NetworkDevicesClient.Create.
func (c *NetworkDevicesClient) Create(ctx context.Context, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("createNetworkDevice")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		Payload: wrapPayload("NetworkDevice", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("creating network device: %w", err)
	}

	return resp, nil
}

// CreateXML implements ise.NetworkDevicesClient.CreateXML, for legacy
// deployments that only accept XML payloads.
func (c *NetworkDevicesClient) CreateXML(ctx context.Context, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("createNetworkDeviceXML")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		Payload: wrapPayload("NetworkDevice", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("creating network device (xml): %w", err)
	}

	return resp, nil
}

// Update implements ise.NetworkDevicesClient.Update.
func (c *NetworkDevicesClient) Update(ctx context.Context, id string, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("updateNetworkDevice")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
		Payload:    wrapPayload("NetworkDevice", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("updating network device: %w", err)
	}

	return resp, nil
}

// Delete implements ise.NetworkDevicesClient.Delete.
func (c *NetworkDevicesClient) Delete(ctx context.Context, id string) error {
	desc, _ := Descriptor("deleteNetworkDevice")

	_, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return fmt.Errorf("deleting network device: %w", err)
	}

	return nil
}
