package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display ISE deployment information",
		Long:  "Fetch ERS version information from the configured ISE server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.VersionInfo(context.Background())
			if err != nil {
				return fmt.Errorf("failed to fetch version info: %w", err)
			}

			return outputResource(resp)
		},
	}
}
