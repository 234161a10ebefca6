package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/netpolicy-io/ise-client/internal/constants"
	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/netpolicy-io/ise-client/pkg/iseclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Output format constants.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

const defaultYAMLIndent = 2

// Static errors for err113 compliance.
var (
	ErrNoServer       = errors.New("no ISE server configured, run 'isectl login' or set --server")
	ErrNoPayload      = errors.New("provide a payload via --data or --file")
	ErrUnknownSetting = errors.New("unknown configuration setting")
)

// CreateClient builds an ise.Client from the active CLI configuration.
// The password is never persisted; it comes from the ISECTL_PASSWORD
// environment variable or the --password flag of individual commands.
func CreateClient() (ise.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, ErrNoServer
	}

	config := &ise.Config{
		BaseURL:       server,
		Username:      viper.GetString("username"),
		Password:      viper.GetString("password"),
		AccessToken:   viper.GetString("token"),
		SkipTLSVerify: viper.GetBool("insecure"),
		Debug:         viper.GetBool("verbose"),
	}

	client, err := iseclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer encodes data as indented JSON on stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data as YAML on stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// collectPages drains a pager. When all is false only the first page is
// fetched.
func collectPages(ctx context.Context, pager *ise.Pager, all bool) ([]gjson.Result, error) {
	var items []gjson.Result

	for pager.HasNext() {
		resp, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching page: %w", err)
		}

		items = append(items, pager.Items(resp)...)

		if !all {
			break
		}
	}

	return items, nil
}

// itemsToAny converts gjson results into plain values for JSON/YAML encoding.
func itemsToAny(items []gjson.Result) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		var value any
		if err := json.Unmarshal([]byte(item.Raw), &value); err == nil {
			out = append(out, value)
		}
	}

	return out
}

// outputItems renders a list of search-result items in the selected format.
func outputItems(items []gjson.Result, resource string) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(itemsToAny(items))
	case OutputFormatYAML:
		return StandardYAMLRenderer(itemsToAny(items))
	default:
		return renderItemTable(items, resource)
	}
}

func renderItemTable(items []gjson.Result, resource string) error {
	if len(items) == 0 {
		fmt.Printf("No %s found\n", resource)

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Description")

	for _, item := range items {
		_ = table.Append(
			item.Get("id").String(),
			item.Get("name").String(),
			item.Get("description").String(),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nShowing %d %s\n", len(items), resource)

	return nil
}

// outputResource renders a single resource response in the selected format.
// Table mode prints the top-level fields of the unwrapped envelope.
func outputResource(resp *ise.RestResponse) error {
	root := resp.JSON()

	// Unwrap single-key ERS envelopes such as {"ERSEndPoint": {...}}
	if root.IsObject() {
		keys := root.Map()
		if len(keys) == 1 {
			for _, inner := range keys {
				if inner.IsObject() {
					root = inner
				}
			}
		}
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(itemsToAny([]gjson.Result{root})[0])
	case OutputFormatYAML:
		return StandardYAMLRenderer(itemsToAny([]gjson.Result{root})[0])
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		root.ForEach(func(key, value gjson.Result) bool {
			_ = table.Append(key.String(), value.String())

			return true
		})

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// readPayload resolves a JSON payload from an inline string or a file.
func readPayload(data, file string) (map[string]any, error) {
	var raw []byte

	switch {
	case data != "":
		raw = []byte(data)
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading payload file: %w", err)
		}

		raw = content
	default:
		return nil, ErrNoPayload
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}

	return payload, nil
}

// saveConfig writes the active viper configuration to disk with restrictive
// permissions. Secrets (password, token flags) are scrubbed first.
func saveConfig() error {
	viper.Set("password", "")

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".isectl")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		cfgFile = filepath.Join(configDir, "config.yml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if err := os.Chmod(cfgFile, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("restricting config file permissions: %w", err)
	}

	return nil
}
