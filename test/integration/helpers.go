//go:build integration

package integration

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/netpolicy-io/ise-client/pkg/ise"
	"github.com/netpolicy-io/ise-client/pkg/iseclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Server        string
	Username      string
	Password      string
	SkipTLSVerify bool
	Verbose       bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	insecure, _ := strconv.ParseBool(os.Getenv("ISE_SKIP_TLS_VERIFY"))
	verbose, _ := strconv.ParseBool(os.Getenv("ISE_TEST_VERBOSE"))

	return &TestConfig{
		Server:        os.Getenv("ISE_SERVER"),
		Username:      os.Getenv("ISE_USERNAME"),
		Password:      os.Getenv("ISE_PASSWORD"),
		SkipTLSVerify: insecure,
		Verbose:       verbose,
	}
}

// SkipIfMissingConfig skips the test when no live deployment is configured
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.Server == "" || c.Username == "" || c.Password == "" {
		t.Skip("Skipping integration test: set ISE_SERVER, ISE_USERNAME and ISE_PASSWORD to run")
	}
}

// NewClient builds a client against the configured deployment
func (c *TestConfig) NewClient(t *testing.T) ise.Client {
	t.Helper()

	client, err := iseclient.New(&ise.Config{
		BaseURL:       c.Server,
		Username:      c.Username,
		Password:      c.Password,
		SkipTLSVerify: c.SkipTLSVerify,
		Debug:         c.Verbose,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

// GenerateTestName returns a unique name so parallel runs don't collide
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// GenerateTestMAC returns a locally-administered MAC unique to this run
func GenerateTestMAC() string {
	nano := time.Now().UnixNano()

	return fmt.Sprintf("02:00:%02X:%02X:%02X:%02X",
		byte(nano>>24), byte(nano>>16), byte(nano>>8), byte(nano))
}
