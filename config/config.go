package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "REPO_FLATTEN"

// Config represents the application configuration
type Config struct {
	Timeout   int    `mapstructure:"timeout" yaml:"timeout"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Progress  bool   `mapstructure:"progress" yaml:"progress"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Timeout:   5,
		OutputDir: "output",
		Progress:  true,
		Verbose:   false,
	}
}

// Validate rejects values the fetcher and flattener cannot work with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive number of seconds, got %d", c.Timeout)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

// Load resolves configuration from defaults, the config file, REPO_FLATTEN_*
// environment variables and finally any flags set on the command line.
// A missing default config file is not an error; a missing explicit one is.
func Load(v *viper.Viper, configFile string, flags *pflag.FlagSet) (Config, error) {
	defaults := DefaultConfig()
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("progress", defaults.Progress)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigFile(GetConfigPath())
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// flagKeys maps config keys to the CLI flag that overrides them.
var flagKeys = map[string]string{
	"timeout":    "timeout",
	"output_dir": "output-dir",
	"verbose":    "verbose",
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// SaveConfig saves the configuration to path as YAML
func SaveConfig(path string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}

// GetConfigPath returns the path to the default config file
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "repo-flatten", "config.yaml")
}
