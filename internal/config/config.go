package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "BUILDING"

// Default values for the storage layout.
const (
	DefaultDataFile   = "building.yaml"
	DefaultDataDir    = "data"
	DefaultMarkerFile = "go.mod"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Storage StorageConfig
}

// AppConfig holds runtime behaviour settings.
type AppConfig struct {
	Env       string
	LogLevel  string
	Verbosity int
}

// StorageConfig describes where the building data lives relative to the
// main directory.
type StorageConfig struct {
	// DataFile is the data file name, relative to DataDir unless absolute.
	DataFile string
	// DataDir is the subdirectory of the main directory holding data files.
	DataDir string
	// MarkerFile anchors the main directory; only its existence matters.
	MarkerFile string
}

// Load reads configuration from environment variables and, when flags is not
// nil, from command-line flags. Flags win over the environment.
// Flag names use dashes (data-file); config keys use underscores (data_file).
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	defaults := Default()
	v.SetDefault("env", defaults.App.Env)
	v.SetDefault("log_level", defaults.App.LogLevel)
	v.SetDefault("verbosity", defaults.App.Verbosity)
	v.SetDefault("data_file", defaults.Storage.DataFile)
	v.SetDefault("data_dir", defaults.Storage.DataDir)
	v.SetDefault("marker_file", defaults.Storage.MarkerFile)

	// Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:       v.GetString("env"),
			LogLevel:  v.GetString("log_level"),
			Verbosity: v.GetInt("verbosity"),
		},
		Storage: StorageConfig{
			DataFile:   strings.TrimSpace(v.GetString("data_file")),
			DataDir:    strings.TrimSpace(v.GetString("data_dir")),
			MarkerFile: strings.TrimSpace(v.GetString("marker_file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// bindFlags binds every flag that maps to a known config key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{"env", "log_level", "verbosity", "data_file", "data_dir", "marker_file"} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// Default returns the configuration Load starts from before the environment
// and flags are applied.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env: "development",
		},
		Storage: StorageConfig{
			DataFile:   DefaultDataFile,
			DataDir:    DefaultDataDir,
			MarkerFile: DefaultMarkerFile,
		},
	}
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.App.Env == "" {
		return fmt.Errorf("env is required")
	}
	if c.App.Verbosity < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}
	if c.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
			return fmt.Errorf("log_level %q is not a valid level", c.App.LogLevel)
		}
	}

	if c.Storage.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.Storage.MarkerFile == "" {
		return fmt.Errorf("marker_file is required")
	}
	if strings.ContainsRune(c.Storage.MarkerFile, filepath.Separator) {
		return fmt.Errorf("marker_file must be a bare file name")
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if filepath.IsAbs(c.Storage.DataDir) {
		return fmt.Errorf("data_dir must be relative to the main directory")
	}
	if clean := filepath.Clean(c.Storage.DataDir); clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("data_dir must not leave the main directory")
	}

	return nil
}
