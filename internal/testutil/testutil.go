// Package testutil provides shared test helpers for config files and date fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/itera/internal/schedule"
)

// UnreachablePort is a TCP port nothing listens on, so connections fail fast.
const UnreachablePort = 1

// ConfigOption configures optional fields when creating a config file fixture.
type ConfigOption func(*testConfig)

type testConfig struct {
	driver        string
	port          int
	defaultOffset int
	anchor        string
}

// WithDriver sets database.driver.
func WithDriver(driver string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.driver = driver
	}
}

// WithDefaultTimezoneOffset sets schedule.default_timezone_offset.
func WithDefaultTimezoneOffset(offsetMinutes int) ConfigOption {
	return func(cfg *testConfig) {
		cfg.defaultOffset = offsetMinutes
	}
}

// WithAnchor sets schedule.anchor.
func WithAnchor(anchor string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.anchor = anchor
	}
}

// SetupTestConfig creates a valid config file whose database cannot be reached.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		driver:        "mysql",
		port:          UnreachablePort,
		defaultOffset: schedule.DefaultTimezoneOffset,
		anchor:        string(schedule.AnchorUTC),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	configContent := fmt.Sprintf(`database:
  driver: %s
  host: 127.0.0.1
  port: %d
  database: itera_test
  username: itera
  sslmode: disable
schedule:
  default_timezone_offset: %d
  anchor: %s
review:
  retry_attempts: 1
  retry_delay_ms: 0
`,
		cfg.driver,
		cfg.port,
		cfg.defaultOffset,
		cfg.anchor,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// Dates parses YYYY-MM-DD values, panicking on malformed input.
func Dates(values ...string) []schedule.Date {
	result := make([]schedule.Date, 0, len(values))
	for _, v := range values {
		result = append(result, schedule.MustParseDate(v))
	}
	return result
}

// DatePtr parses a YYYY-MM-DD value and returns its address.
func DatePtr(value string) *schedule.Date {
	d := schedule.MustParseDate(value)
	return &d
}
