package client

import (
	"net/http"

	"github.com/netpolicy-io/ise-client/pkg/ise"
)

// The operation table maps operation names to endpoint descriptors. It is
// built once at process start and shared read-only by all calls; facade
// methods look descriptors up here instead of hand-writing request logic.

const (
	mediaTypeEndpoint      = "identity.endpoint.1.2"
	mediaTypeEndpointGroup = "identity.endpointgroup.1.0"
	mediaTypeNetworkDevice = "network.networkdevice.1.1"
)

//nolint:gochecknoglobals // immutable descriptor table
var operations = map[string]*ise.EndpointDescriptor{
	"getVersionInfo": {
		Operation:    "getVersionInfo",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/versioninfo",
		ResponseSchemas: map[int]string{
			http.StatusOK: "versioninfo",
		},
	},

	"getEndpoint": {
		Operation:    "getEndpoint",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/endpoint/{id}",
		MediaType:    mediaTypeEndpoint,
	},
	"getEndpointByName": {
		Operation:    "getEndpointByName",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/endpoint/name/{name}",
		MediaType:    mediaTypeEndpoint,
	},
	"listEndpoints": {
		Operation:    "listEndpoints",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/endpoint",
		MediaType:    mediaTypeEndpoint,
		ResponseSchemas: map[int]string{
			http.StatusOK: "searchresult",
		},
		Page: ise.DefaultPageSpec(),
	},
	"createEndpoint": {
		Operation:     "createEndpoint",
		Method:        http.MethodPost,
		PathTemplate:  "/ers/config/endpoint",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeEndpoint,
		RequestSchema: "endpoint.create",
	},
	"updateEndpoint": {
		Operation:     "updateEndpoint",
		Method:        http.MethodPut,
		PathTemplate:  "/ers/config/endpoint/{id}",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeEndpoint,
		RequestSchema: "endpoint.update",
	},
	"deleteEndpoint": {
		Operation:    "deleteEndpoint",
		Method:       http.MethodDelete,
		PathTemplate: "/ers/config/endpoint/{id}",
		MediaType:    mediaTypeEndpoint,
	},
	"bulkImportEndpoints": {
		Operation:    "bulkImportEndpoints",
		Method:       http.MethodPost,
		PathTemplate: "/ers/config/endpoint/bulk/import",
		Body:         ise.BodyMultipart,
		MediaType:    mediaTypeEndpoint,
	},

	"getIdentityGroup": {
		Operation:    "getIdentityGroup",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/endpointgroup/{id}",
		MediaType:    mediaTypeEndpointGroup,
	},
	"listIdentityGroups": {
		Operation:    "listIdentityGroups",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/endpointgroup",
		MediaType:    mediaTypeEndpointGroup,
		ResponseSchemas: map[int]string{
			http.StatusOK: "searchresult",
		},
		Page: ise.DefaultPageSpec(),
	},
	"createIdentityGroup": {
		Operation:     "createIdentityGroup",
		Method:        http.MethodPost,
		PathTemplate:  "/ers/config/endpointgroup",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeEndpointGroup,
		RequestSchema: "identitygroup.create",
	},
	"updateIdentityGroup": {
		Operation:     "updateIdentityGroup",
		Method:        http.MethodPut,
		PathTemplate:  "/ers/config/endpointgroup/{id}",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeEndpointGroup,
		RequestSchema: "identitygroup.update",
	},
	"deleteIdentityGroup": {
		Operation:    "deleteIdentityGroup",
		Method:       http.MethodDelete,
		PathTemplate: "/ers/config/endpointgroup/{id}",
		MediaType:    mediaTypeEndpointGroup,
	},

	"getNetworkDevice": {
		Operation:    "getNetworkDevice",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/networkdevice/{id}",
		MediaType:    mediaTypeNetworkDevice,
	},
	"getNetworkDeviceByName": {
		Operation:    "getNetworkDeviceByName",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/networkdevice/name/{name}",
		MediaType:    mediaTypeNetworkDevice,
	},
	"listNetworkDevices": {
		Operation:    "listNetworkDevices",
		Method:       http.MethodGet,
		PathTemplate: "/ers/config/networkdevice",
		MediaType:    mediaTypeNetworkDevice,
		ResponseSchemas: map[int]string{
			http.StatusOK: "searchresult",
		},
		Page: ise.DefaultPageSpec(),
	},
	"createNetworkDevice": {
		Operation:     "createNetworkDevice",
		Method:        http.MethodPost,
		PathTemplate:  "/ers/config/networkdevice",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeNetworkDevice,
		RequestSchema: "networkdevice.create",
	},
	"createNetworkDeviceXML": {
		Operation:    "createNetworkDeviceXML",
		Method:       http.MethodPost,
		PathTemplate: "/ers/config/networkdevice",
		Body:         ise.BodyXML,
		MediaType:    mediaTypeNetworkDevice,
		XMLRoot:      "NetworkDevice",
	},
	"updateNetworkDevice": {
		Operation:     "updateNetworkDevice",
		Method:        http.MethodPut,
		PathTemplate:  "/ers/config/networkdevice/{id}",
		Body:          ise.BodyJSON,
		MediaType:     mediaTypeNetworkDevice,
		RequestSchema: "networkdevice.update",
	},
	"deleteNetworkDevice": {
		Operation:    "deleteNetworkDevice",
		Method:       http.MethodDelete,
		PathTemplate: "/ers/config/networkdevice/{id}",
		MediaType:    mediaTypeNetworkDevice,
	},
}

// Descriptor returns the descriptor for the named operation.
func Descriptor(operation string) (*ise.EndpointDescriptor, bool) {
	desc, ok := operations[operation]

	return desc, ok
}
