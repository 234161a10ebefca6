// Package iseclient provides the primary entry point for constructing a
// Cisco ISE ERS API client that implements the ise.Client interface.
//
// It layers configuration, HTTP transport, authentication, payload validation,
// and pagination on top of the resource interfaces and types defined in the
// ise package. Most applications should import iseclient to build a client,
// then use the returned ise.Client to access resource-specific clients, for
// example Endpoints(), IdentityGroups(), NetworkDevices().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tidwall/gjson"
//
//	  "github.com/netpolicy-io/ise-client/pkg/ise"
//	  "github.com/netpolicy-io/ise-client/pkg/iseclient"
//	)
//
//	func example() {
//	  client, err := iseclient.NewWithPassword("https://ise.example.com:9060", "admin", "secret")
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  pager := client.Endpoints().List(context.Background(), ise.NewQueryParams().WithSize(50))
//	  err = pager.ForEach(context.Background(), func(item gjson.Result) error {
//	    log.Println(item.Get("name").String())
//	    return nil
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//	}
package iseclient
