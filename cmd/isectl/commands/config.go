package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settableKeys are the configuration keys exposed through 'config set'.
var settableKeys = map[string]string{
	"server":   "ISE server URL",
	"username": "username for basic authentication",
	"token":    "bearer access token",
	"output":   "default output format (table, json, yaml)",
	"insecure": "skip TLS certificate validation",
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify isectl configuration settings",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := make(map[string]any, len(settableKeys))
			for key := range settableKeys {
				settings[key] = viper.Get(key)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(settings)
			default:
				return StandardYAMLRenderer(settings)
			}
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := settableKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
			}

			fmt.Println(viper.GetString(key))
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if _, ok := settableKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
			}

			viper.Set(key, value)

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Set %s\n", key)
			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := settableKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
			}

			viper.Set(key, "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Unset %s\n", key)
			return nil
		},
	}
}
