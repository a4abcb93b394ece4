package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/yshell/internal/util"
	"gopkg.in/yaml.v3"
)

// CLI-facing verbosity values; see [Config.Merge] for the mapping onto
// internal log levels.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.WarnLevel

	// DefaultPrompt matches the classic yshell prompt
	DefaultPrompt = "%"

	// DefaultEcho echoes input lines back after the prompt
	DefaultEcho = false

	// DefaultSerialWidth is the right-justified column width for serial numbers in listings
	DefaultSerialWidth = 6

	// DefaultSizeWidth is the right-justified column width for sizes in listings
	DefaultSizeWidth = 6

	// DefaultExitOnError stops the shell at the first failed command
	DefaultExitOnError = false
)

// Config contains runtime configuration values for the shell and namespace.
type Config struct {
	LogLvl      util.LogLevel // Internal log level (Default warn)
	Prompt      string        // Prompt text printed before each line; a space is appended (Default "%")
	Echo        bool          // Echo each input line after the prompt, useful for piped input (Default false)
	SerialWidth int           // Listing column width for serial numbers (Default 6)
	SizeWidth   int           // Listing column width for sizes (Default 6)
	ExitOnError bool          // Stop reading commands after the first failure (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a CLI verbosity between 1 (error) and 5 (trace) and is clamped
// into that range on merge.
type ConfigOverride struct {
	LogLvl      *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	Prompt      *string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Echo        *bool   `yaml:"echo,omitempty" json:"echo,omitempty"`
	SerialWidth *int    `yaml:"serial_width,omitempty" json:"serial_width,omitempty"`
	SizeWidth   *int    `yaml:"size_width,omitempty" json:"size_width,omitempty"`
	ExitOnError *bool   `yaml:"exit_on_error,omitempty" json:"exit_on_error,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:      DefaultLogLvl,
		Prompt:      DefaultPrompt,
		Echo:        DefaultEcho,
		SerialWidth: DefaultSerialWidth,
		SizeWidth:   DefaultSizeWidth,
		ExitOnError: DefaultExitOnError,
	}
}

// NewConfig creates a Config from defaults with override applied.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerboseToLogLvl converts a CLI verbosity (1-5) into an internal log level,
// clamping out of range values.
func VerboseToLogLvl(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLvl(*override.LogLvl)
	}
	if override.Prompt != nil {
		c.Prompt = *override.Prompt
	}
	if override.Echo != nil {
		c.Echo = *override.Echo
	}
	if override.SerialWidth != nil && *override.SerialWidth > 0 {
		c.SerialWidth = *override.SerialWidth
	}
	if override.SizeWidth != nil && *override.SizeWidth > 0 {
		c.SizeWidth = *override.SizeWidth
	}
	if override.ExitOnError != nil {
		c.ExitOnError = *override.ExitOnError
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
