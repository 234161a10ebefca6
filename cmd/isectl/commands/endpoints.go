package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/netpolicy-io/ise-client/internal/constants"
	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/spf13/cobra"
)

// NewEndpointsCommand creates the endpoints command group.
func NewEndpointsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint", "ep"},
		Short:   "Manage ISE endpoints",
		Long:    "List, create, update, and delete ISE endpoint records",
	}

	cmd.AddCommand(newEndpointsListCommand())
	cmd.AddCommand(newEndpointsGetCommand())
	cmd.AddCommand(newEndpointsCreateCommand())
	cmd.AddCommand(newEndpointsUpdateCommand())
	cmd.AddCommand(newEndpointsDeleteCommand())
	cmd.AddCommand(newEndpointsImportCommand())

	return cmd
}

func newEndpointsListCommand() *cobra.Command {
	var (
		allPages   bool
		size       int
		filters    []string
		filterType string
		sortAsc    string
		sortDsc    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List endpoints",
		Long:  "List endpoint records, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := ise.NewQueryParams().WithSize(size)
			for _, filter := range filters {
				params = params.WithFilter(filter)
			}
			if filterType != "" {
				params = params.WithFilterType(filterType)
			}
			if sortAsc != "" {
				params = params.WithSortAsc(sortAsc)
			}
			if sortDsc != "" {
				params = params.WithSortDsc(sortDsc)
			}

			ctx := context.Background()
			pager := client.Endpoints().List(ctx, params)

			items, err := collectPages(ctx, pager, allPages)
			if err != nil {
				return fmt.Errorf("failed to list endpoints: %w", err)
			}

			return outputItems(items, "endpoints")
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter expression, e.g. mac.EQ.AA:BB:CC:DD:EE:FF (repeatable)")
	cmd.Flags().StringVar(&filterType, "filter-type", "", "combine multiple filters with AND or OR")
	cmd.Flags().StringVar(&sortAsc, "sort-asc", "", "sort ascending by field")
	cmd.Flags().StringVar(&sortDsc, "sort-dsc", "", "sort descending by field")

	return cmd
}

func newEndpointsGetCommand() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "get <id-or-name>",
		Short: "Get an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var resp *ise.RestResponse
			if byName {
				resp, err = client.Endpoints().GetByName(ctx, args[0])
			} else {
				resp, err = client.Endpoints().Get(ctx, args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to get endpoint: %w", err)
			}

			return outputResource(resp)
		},
	}

	cmd.Flags().BoolVar(&byName, "name", false, "look up by name instead of ID")

	return cmd
}

func newEndpointsCreateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an endpoint",
		Long:  "Create an endpoint record from a JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			resp, err := client.Endpoints().Create(context.Background(), payload)
			if err != nil {
				return fmt.Errorf("failed to create endpoint: %w", err)
			}

			if location := resp.Headers.Get("Location"); location != "" {
				fmt.Printf("Created endpoint: %s\n", location)
			} else {
				fmt.Println("Created endpoint")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")

	return cmd
}

func newEndpointsUpdateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			resp, err := client.Endpoints().Update(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to update endpoint: %w", err)
			}

			fmt.Println("Updated endpoint")

			if resp.Get("UpdatedFieldsList").Exists() {
				return outputResource(resp)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")

	return cmd
}

func newEndpointsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Endpoints().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete endpoint: %w", err)
			}

			fmt.Println("Deleted endpoint")
			return nil
		},
	}
}

func newEndpointsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Bulk import endpoints",
		Long:  "Upload a CSV file of endpoint records for bulk import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			csv, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading CSV file: %w", err)
			}

			resp, err := client.Endpoints().BulkImport(context.Background(), filepath.Base(args[0]), csv)
			if err != nil {
				return fmt.Errorf("failed to import endpoints: %w", err)
			}

			if location := resp.Headers.Get("Location"); location != "" {
				fmt.Printf("Import submitted: %s\n", location)
			} else {
				fmt.Println("Import submitted")
			}

			return nil
		},
	}
}
