package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			Database: "itera",
			Username: "itera",
		},
		Schedule: ScheduleConfig{
			DefaultTimezoneOffset: 180,
			Anchor:                "utc",
		},
		Review: ReviewConfig{
			RetryAttempts: 3,
			RetryDelayMs:  50,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		useEnvPath        bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:    "no config file uses defaults",
			wantErr: false,
			want:    defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `database:
  driver: postgres
  host: db.internal
  port: 5432
  database: itera_prod
  username: app
  sslmode: require
  params:
    application_name: itera
  max_open_conns: 20
schedule:
  default_timezone_offset: -300
  anchor: local
review:
  retry_attempts: 5
  retry_delay_ms: 10
`,
			wantErr: false,
			want: func() *Config {
				return &Config{
					Database: DatabaseConfig{
						Driver:       "postgres",
						Host:         "db.internal",
						Port:         5432,
						Database:     "itera_prod",
						Username:     "app",
						SSLMode:      "require",
						Params:       map[string]string{"application_name": "itera"},
						MaxOpenConns: 20,
					},
					Schedule: ScheduleConfig{
						DefaultTimezoneOffset: -300,
						Anchor:                "local",
					},
					Review: ReviewConfig{
						RetryAttempts: 5,
						RetryDelayMs:  10,
					},
				}
			},
		},
		{
			name: "partial config with missing fields uses defaults",
			configContent: `schedule:
  default_timezone_offset: 0
`,
			wantErr: false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Schedule.DefaultTimezoneOffset = 0
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  host: localhost
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "timezone offset out of range",
			configContent: `schedule:
  default_timezone_offset: 900
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"schedule.default_timezone_offset must be a UTC offset in minutes between -720 and 840",
			},
		},
		{
			name: "unknown driver and anchor",
			configContent: `database:
  driver: sqlite
schedule:
  anchor: registration
`,
			wantErr: true,
			wantErrorContains: []string{
				"driver must be one of [mysql postgres]",
				"anchor must be one of [utc local]",
			},
		},
		{
			name: "explicit config file path",
			configContent: `database:
  host: explicit.example.com
`,
			useExplicitPath: true,
			wantErr:         false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Host = "explicit.example.com"
				return cfg
			},
		},
		{
			name: "config file path from environment",
			configContent: `database:
  host: env.example.com
`,
			useEnvPath: true,
			wantErr:    false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Host = "env.example.com"
				return cfg
			},
		},
		{
			name: "database password from environment",
			configContent: `database:
  password: from-file
`,
			env:     map[string]string{"DB_PASSWORD": "from-env"},
			wantErr: false,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Password = "from-env"
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)
			t.Setenv(ConfigFileEnv, "")
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var configPath string
			switch {
			case tt.useExplicitPath:
				configPath = filepath.Join(tempDir, "custom.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			case tt.useEnvPath:
				envPath := filepath.Join(tempDir, "env.yml")
				require.NoError(t, os.WriteFile(envPath, []byte(tt.configContent), 0644))
				t.Setenv(ConfigFileEnv, envPath)
			default:
				workDir := filepath.Join(tempDir, "work")
				require.NoError(t, os.Mkdir(workDir, 0755))
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yml"), []byte(tt.configContent), 0644))
				}
				chdirForTest(t, workDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestReviewConfig_RetryDelay(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, ReviewConfig{RetryDelayMs: 50}.RetryDelay())
	assert.Equal(t, time.Duration(0), ReviewConfig{}.RetryDelay())
}

// chdirForTest changes the working directory to dir and restores it when the
// test finishes (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(oldDir))
	})
}
