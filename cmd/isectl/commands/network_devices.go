package commands

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/constants"
	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/spf13/cobra"
)

// NewNetworkDevicesCommand creates the network-devices command group.
func NewNetworkDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "network-devices",
		Aliases: []string{"network-device", "nad"},
		Short:   "Manage network devices",
		Long:    "List, create, update, and delete ISE network devices",
	}

	cmd.AddCommand(newNetworkDevicesListCommand())
	cmd.AddCommand(newNetworkDevicesGetCommand())
	cmd.AddCommand(newNetworkDevicesCreateCommand())
	cmd.AddCommand(newNetworkDevicesUpdateCommand())
	cmd.AddCommand(newNetworkDevicesDeleteCommand())

	return cmd
}

func newNetworkDevicesListCommand() *cobra.Command {
	var (
		allPages bool
		size     int
		filters  []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List network devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := ise.NewQueryParams().WithSize(size)
			for _, filter := range filters {
				params = params.WithFilter(filter)
			}

			ctx := context.Background()
			pager := client.NetworkDevices().List(ctx, params)

			items, err := collectPages(ctx, pager, allPages)
			if err != nil {
				return fmt.Errorf("failed to list network devices: %w", err)
			}

			return outputItems(items, "network devices")
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter expression (repeatable)")

	return cmd
}

func newNetworkDevicesGetCommand() *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "get <id-or-name>",
		Short: "Get a network device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var resp *ise.RestResponse
			if byName {
				resp, err = client.NetworkDevices().GetByName(ctx, args[0])
			} else {
				resp, err = client.NetworkDevices().Get(ctx, args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to get network device: %w", err)
			}

			return outputResource(resp)
		},
	}

	cmd.Flags().BoolVar(&byName, "name", false, "look up by name instead of ID")

	return cmd
}

func newNetworkDevicesCreateCommand() *cobra.Command {
	var (
		data   string
		file   string
		useXML bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a network device",
		Long:  "Create a network device from a JSON payload, optionally submitted as XML for legacy deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			ctx := context.Background()

			var resp *ise.RestResponse
			if useXML {
				resp, err = client.NetworkDevices().CreateXML(ctx, payload)
			} else {
				resp, err = client.NetworkDevices().Create(ctx, payload)
			}
			if err != nil {
				return fmt.Errorf("failed to create network device: %w", err)
			}

			if location := resp.Headers.Get("Location"); location != "" {
				fmt.Printf("Created network device: %s\n", location)
			} else {
				fmt.Println("Created network device")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")
	cmd.Flags().BoolVar(&useXML, "xml", false, "submit the payload as XML")

	return cmd
}

func newNetworkDevicesUpdateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a network device",
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

			_, err = client.NetworkDevices().Update(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to update network device: %w", err)
			}

			fmt.Println("Updated network device")
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")

	return cmd
}

func newNetworkDevicesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a network device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.NetworkDevices().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete network device: %w", err)
			}

			fmt.Println("Deleted network device")
			return nil
		},
	}
}
