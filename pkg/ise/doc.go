// Package ise provides the public API surface for the Cisco Identity
// Services Engine (ISE) ERS client.
//
// The package defines the types shared by the request-execution pipeline:
// endpoint descriptors, the uniform response wrapper, the error taxonomy,
// query parameters, and the pagination walker. The concrete client is
// constructed with github.com/netpolicy-io/ise-client/pkg/iseclient.
//
// # Basic usage
//
//	client, err := iseclient.New(&ise.Config{
//	    BaseURL:  "https://ise.example.com:9060",
//	    Username: "admin",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	endpoint, err := client.Endpoints().Get(ctx, "9a9b910c-54d3-44a4-a3c3-dd007c171599")
//
// # Error handling
//
// All pipeline errors belong to a small taxonomy. Use errors.As or the
// Is* helpers to classify:
//
//	_, err := client.Endpoints().Get(ctx, id)
//	if ise.IsNotFound(err) {
//	    // 404 from the ERS API
//	}
//
// # Pagination
//
// Listing operations return a Pager which fetches pages lazily. Stopping
// early issues no further requests:
//
//	pager := client.Endpoints().List(ctx, nil)
//	for pager.HasNext() {
//	    page, err := pager.Next(ctx)
//	    ...
//	}
package ise
