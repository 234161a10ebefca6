package commands

import (
	"context"
	"fmt"

	"github.com/netpolicy-io/ise-client/internal/constants"
	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/spf13/cobra"
)

// NewIdentityGroupsCommand creates the identity-groups command group.
func NewIdentityGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identity-groups",
		Aliases: []string{"identity-group", "groups"},
		Short:   "Manage endpoint identity groups",
		Long:    "List, create, update, and delete ISE endpoint identity groups",
	}

	cmd.AddCommand(newIdentityGroupsListCommand())
	cmd.AddCommand(newIdentityGroupsGetCommand())
	cmd.AddCommand(newIdentityGroupsCreateCommand())
	cmd.AddCommand(newIdentityGroupsUpdateCommand())
	cmd.AddCommand(newIdentityGroupsDeleteCommand())

	return cmd
}

func newIdentityGroupsListCommand() *cobra.Command {
	var (
		allPages bool
		size     int
		filters  []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List endpoint identity groups",
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
			pager := client.IdentityGroups().List(ctx, params)

			items, err := collectPages(ctx, pager, allPages)
			if err != nil {
				return fmt.Errorf("failed to list identity groups: %w", err)
			}

			return outputItems(items, "identity groups")
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&size, "size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter expression (repeatable)")

	return cmd
}

func newIdentityGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an endpoint identity group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.IdentityGroups().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get identity group: %w", err)
			}

			return outputResource(resp)
		},
	}
}

func newIdentityGroupsCreateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an endpoint identity group",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			resp, err := client.IdentityGroups().Create(context.Background(), payload)
			if err != nil {
				return fmt.Errorf("failed to create identity group: %w", err)
			}

			if location := resp.Headers.Get("Location"); location != "" {
				fmt.Printf("Created identity group: %s\n", location)
			} else {
				fmt.Println("Created identity group")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")

	return cmd
}

func newIdentityGroupsUpdateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an endpoint identity group",
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

			_, err = client.IdentityGroups().Update(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to update identity group: %w", err)
			}

			fmt.Println("Updated identity group")
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file containing the JSON payload")

	return cmd
}

func newIdentityGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an endpoint identity group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.IdentityGroups().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete identity group: %w", err)
			}

			fmt.Println("Deleted identity group")
			return nil
		},
	}
}
