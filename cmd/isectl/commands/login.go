package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/netpolicy-io/ise-client/pkg/iseclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		username string
		password string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Cisco ISE",
		Long:  "Verify credentials against an ISE ERS endpoint and save the connection settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get server URL
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("ISE server URL: ")
				server, _ = reader.ReadString('\n')
				server = strings.TrimSpace(server)
			}

			if server == "" {
				return ErrNoServer
			}

			insecure := viper.GetBool("insecure")

			config := &ise.Config{
				BaseURL:       server,
				SkipTLSVerify: insecure,
			}

			if token != "" {
				config.AccessToken = token
			} else {
				if username == "" {
					reader := bufio.NewReader(os.Stdin)
					fmt.Print("Username: ")
					username, _ = reader.ReadString('\n')
					username = strings.TrimSpace(username)
				}

				if password == "" {
					fmt.Print("Password: ")
					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}
					password = string(bytePassword)
					fmt.Println()
				}

				config.Username = username
				config.Password = password
			}

			// Create client
			client, err := iseclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Test connection by fetching version info
			ctx := context.Background()
			resp, err := client.VersionInfo(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to ISE: %w", err)
			}

			// Save connection settings. The password is deliberately not
			// persisted; set ISECTL_PASSWORD or pass --password per command.
			viper.Set("server", config.BaseURL)
			viper.Set("username", username)
			viper.Set("token", token)
			viper.Set("insecure", insecure)

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s\n", config.BaseURL)
			if version := resp.Get("VersionInfo.currentServerVersion"); version.Exists() {
				fmt.Printf("ERS version: %s\n", version.String())
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&server, "server", "s", "", "ISE server URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for basic authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for basic authentication")
	cmd.Flags().StringVarP(&token, "token", "t", "", "bearer access token")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Cisco ISE",
		Long:  "Clear saved connection settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("server", "")
			viper.Set("username", "")
			viper.Set("token", "")

			if err := saveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}
