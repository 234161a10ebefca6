package client

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/invoke"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// EndpointsClient implements ise.EndpointsClient.
type EndpointsClient struct {
	invoker *invoke.Invoker
}

// wrapPayload nests the payload under the resource envelope key unless
// the caller already supplied the envelope.
func wrapPayload(root string, payload map[string]any) map[string]any {
	if _, ok := payload[root]; ok && len(payload) == 1 {
		return payload
	}

	return map[string]any{root: payload}
}

// Get implements ise.EndpointsClient.Get.
func (c *EndpointsClient) Get(ctx context.Context, id string) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getEndpoint")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return nil, fmt.Errorf("getting endpoint: %w", err)
	}

	return resp, nil
}

// GetByName implements ise.EndpointsClient.GetByName.
func (c *EndpointsClient) GetByName(ctx context.Context, name string) (*ise.RestResponse, error) {
	desc, _ := Descriptor("getEndpointByName")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"name": name},
	})
	if err != nil {
		return nil, fmt.Errorf("getting endpoint by name: %w", err)
	}

	return resp, nil
}

// List implements ise.EndpointsClient.List.
func (c *EndpointsClient) List(ctx context.Context, params *ise.QueryParams) *ise.Pager {
	desc, _ := Descriptor("listEndpoints")

	return c.invoker.Paginate(ctx, desc, &ise.CallArgs{Query: params})
}

// Create implements ise.EndpointsClient.Create.
func (c *EndpointsClient) Create(ctx context.Context, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("createEndpoint")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		Payload: wrapPayload("ERSEndPoint", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("creating endpoint: %w", err)
	}

	return resp, nil
}

// Update implements ise.EndpointsClient.Update.
func (c *EndpointsClient) Update(ctx context.Context, id string, payload map[string]any) (*ise.RestResponse, error) {
	desc, _ := Descriptor("updateEndpoint")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
		Payload:    wrapPayload("ERSEndPoint", payload),
	})
	if err != nil {
		return nil, fmt.Errorf("updating endpoint: %w", err)
	}

	return resp, nil
}

// Delete implements ise.EndpointsClient.Delete.
func (c *EndpointsClient) Delete(ctx context.Context, id string) error {
	desc, _ := Descriptor("deleteEndpoint")

	_, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		PathParams: map[string]string{"id": id},
	})
	if err != nil {
		return fmt.Errorf("deleting endpoint: %w", err)
	}

	return nil
}

// BulkImport implements ise.EndpointsClient.BulkImport. The CSV content
// is uploaded as a multipart file part named "file".
func (c *EndpointsClient) BulkImport(ctx context.Context, filename string, csv []byte) (*ise.RestResponse, error) {
	desc, _ := Descriptor("bulkImportEndpoints")

	resp, err := c.invoker.Invoke(ctx, desc, &ise.CallArgs{
		Parts: []ise.Part{
			{
				Name:        "file",
				Filename:    filename,
				ContentType: "text/csv",
				Content:     csv,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bulk importing endpoints: %w", err)
	}

	return resp, nil
}
