package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/netpolicy-io/ise-client/internal/client"
	"github.com/netpolicy-io/ise-client/pkg/ise"
)

func newTestClient(t *testing.T, serverURL string) *client.Client {
	t.Helper()

	c, err := client.New(&ise.Config{
		BaseURL:  serverURL,
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	return c
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires a base URL", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&ise.Config{Username: "admin", Password: "secret"})
		require.ErrorIs(t, err, ise.ErrBaseURLRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&ise.Config{BaseURL: "https://ise.example.com:9060"})
		require.Error(t, err)
	})

	t.Run("token alone is enough", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&ise.Config{
			BaseURL:     "https://ise.example.com:9060",
			AccessToken: "opaque-token",
		})
		require.NoError(t, err)
		assert.NotNil(t, c.Endpoints())
		assert.NotNil(t, c.IdentityGroups())
		assert.NotNil(t, c.NetworkDevices())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestEndpointsClient(t *testing.T) {
	t.Parallel()
	t.Run("Get hits the resource path with the media type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ers/config/endpoint/abc", request.URL.Path)
			assert.Equal(t, "identity.endpoint.1.2", request.Header.Get("ERS-Media-Type"))

			writer.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(writer, `{"ERSEndPoint":{"id":"abc","name":"printer-1","mac":"AA:BB:CC:DD:EE:FF"}}`)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.Endpoints().Get(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "printer-1", resp.Get("ERSEndPoint.name").String())
	})

	t.Run("GetByName uses the name route", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ers/config/endpoint/name/printer-1", request.URL.Path)
			writer.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(writer, `{"ERSEndPoint":{"id":"abc","name":"printer-1"}}`)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.Endpoints().GetByName(context.Background(), "printer-1")
		require.NoError(t, err)
		assert.Equal(t, "abc", resp.Get("ERSEndPoint.id").String())
	})

	t.Run("Create wraps a bare payload in the ERS envelope", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			var body map[string]map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "AA:BB:CC:DD:EE:FF", body["ERSEndPoint"]["mac"])

			writer.Header().Set("Location", "/ers/config/endpoint/new-id")
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.Endpoints().Create(context.Background(), map[string]any{
			"name": "printer-1",
			"mac":  "AA:BB:CC:DD:EE:FF",
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, "/ers/config/endpoint/new-id", resp.Headers.Get("Location"))
	})

	t.Run("Create rejects an invalid payload before the network", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("no request should reach the server")
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.Endpoints().Create(context.Background(), map[string]any{"name": "no-mac"})
		require.Error(t, err)
		assert.True(t, ise.IsValidation(err))
	})

	t.Run("List pages through the search result", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server

		server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ers/config/endpoint", request.URL.Path)

			writer.Header().Set("Content-Type", "application/json")

			if request.URL.Query().Get("page") == "2" {
				_, _ = fmt.Fprint(writer, `{"SearchResult":{"total":3,"resources":[{"id":"c","name":"three"}]}}`)

				return
			}

			assert.Equal(t, "5", request.URL.Query().Get("size"))
			_, _ = fmt.Fprintf(writer,
				`{"SearchResult":{"total":3,"resources":[{"id":"a","name":"one"},{"id":"b","name":"two"}],"nextPage":{"href":"%s/ers/config/endpoint?page=2&size=5"}}}`,
				server.URL)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		pager := c.Endpoints().List(context.Background(), ise.NewQueryParams().WithSize(5))

		all, err := pager.All(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "three", all[2].Get("name").String())
	})

	t.Run("Delete returns no payload", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodDelete, request.Method)
			assert.Equal(t, "/ers/config/endpoint/abc", request.URL.Path)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		require.NoError(t, c.Endpoints().Delete(context.Background(), "abc"))
	})

	t.Run("BulkImport posts the CSV as multipart", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ers/config/endpoint/bulk/import", request.URL.Path)
			require.NoError(t, request.ParseMultipartForm(1<<20))

			_, header, err := request.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "endpoints.csv", header.Filename)

			writer.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.Endpoints().BulkImport(context.Background(), "endpoints.csv", []byte("mac,name\n"))
		require.NoError(t, err)
		assert.Equal(t, 202, resp.StatusCode)
	})
}

func TestIdentityGroupsClient(t *testing.T) {
	t.Parallel()
	t.Run("Create validates the group name", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("no request should reach the server")
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.IdentityGroups().Create(context.Background(), map[string]any{"description": "unnamed"})
		require.Error(t, err)
		assert.True(t, ise.IsValidation(err))
	})

	t.Run("Update targets the group route", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			assert.Equal(t, "/ers/config/endpointgroup/g-1", request.URL.Path)
			assert.Equal(t, "identity.endpointgroup.1.0", request.Header.Get("ERS-Media-Type"))

			writer.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(writer, `{"UpdatedFieldsList":{"updatedField":[{"field":"name","oldValue":"old","newValue":"new"}]}}`)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.IdentityGroups().Update(context.Background(), "g-1", map[string]any{"name": "new"})
		require.NoError(t, err)
		assert.Equal(t, "name", resp.Get("UpdatedFieldsList.updatedField.0.field").String())
	})
}

func TestNetworkDevicesClient(t *testing.T) {
	t.Parallel()
	t.Run("CreateXML submits an XML document", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/xml", request.Header.Get("Content-Type"))
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.NetworkDevices().CreateXML(context.Background(), map[string]any{
			"name": "sw-1",
			"NetworkDeviceIPList": []any{
				map[string]any{"ipaddress": "10.0.0.1", "mask": 32},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("Create validates required fields", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("no request should reach the server")
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		_, err := c.NetworkDevices().Create(context.Background(), map[string]any{"description": "no name"})
		require.Error(t, err)
		assert.True(t, ise.IsValidation(err))
	})
}

func TestClient_VersionInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ers/config/versioninfo", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(writer, `{"VersionInfo":{"currentServerVersion":"1.2","supportedVersions":"1.0,1.1,1.2"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	resp, err := c.VersionInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2", resp.Get("VersionInfo.currentServerVersion").String())

	var info struct {
		VersionInfo ise.VersionInfo `json:"VersionInfo"`
	}

	require.NoError(t, resp.Decode(&info))
	assert.Equal(t, "1.0,1.1,1.2", info.VersionInfo.SupportedVersions)
}

func TestClient_InvokeOperation(t *testing.T) {
	t.Parallel()
	t.Run("unknown operation", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://localhost:0")

		_, err := c.InvokeOperation(context.Background(), "teleportEndpoint", nil)
		require.ErrorIs(t, err, ise.ErrUnknownOperation)
	})

	t.Run("named operation resolves from the table", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ers/config/networkdevice/name/sw-1", request.URL.Path)
			writer.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(writer, `{"NetworkDevice":{"id":"nd-1","name":"sw-1"}}`)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL)

		resp, err := c.InvokeOperation(context.Background(), "getNetworkDeviceByName", &ise.CallArgs{
			PathParams: map[string]string{"name": "sw-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "nd-1", resp.Get("NetworkDevice.id").String())
	})
}
