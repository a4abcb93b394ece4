package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/yshell/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	cfg := NewConfig(override)

	expCfg := &Config{
		LogLvl:      util.TraceLevel,
		Prompt:      *override.Prompt,
		Echo:        *override.Echo,
		SerialWidth: *override.SerialWidth,
		SizeWidth:   *override.SizeWidth,
		ExitOnError: *override.ExitOnError,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", 1, util.ErrorLevel},
		{"verbose_2_warn", 2, util.WarnLevel},
		{"verbose_3_info", 3, util.InfoLevel},
		{"verbose_4_debug", 4, util.DebugLevel},
		{"verbose_5_trace", 5, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},     // clamped to 1
		{"verbose_100_clamped_to_5", 100, util.TraceLevel}, // clamped to 5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			override := &ConfigOverride{
				LogLvl: util.Pointer(tt.verboseValue),
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"CLI verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		Prompt: util.Pointer("yshell>"),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.Prompt = "yshell>"

	assert.Equal(t, expCfg, cfg, "must override provided fields and leave rest default")
}

func TestConfig_Merge_IgnoresNonPositiveWidths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{
		SerialWidth: util.Pointer(0),
		SizeWidth:   util.Pointer(-3),
	})

	assert.Equal(t, DefaultSerialWidth, cfg.SerialWidth)
	assert.Equal(t, DefaultSizeWidth, cfg.SizeWidth)
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext     string
		marshal func(v any) ([]byte, error)
	}

	cases := []tc{
		{ext: ".yaml", marshal: yaml.Marshal},
		{ext: ".yml", marshal: yaml.Marshal},
		{ext: ".json", marshal: json.Marshal},
	}

	for _, c := range cases {
		t.Run("valid"+c.ext, func(t *testing.T) {
			t.Parallel()
			override := createOverride()
			data, err := c.marshal(override)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

func TestLoadConfigOverrideFile_HandWrittenYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "yshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"$\"\necho: true\nverbose: 4\n"), 0o600))

	cfg, err := NewConfigFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Prompt)
	assert.True(t, cfg.Echo)
	assert.Equal(t, util.DebugLevel, cfg.LogLvl)
	assert.Equal(t, DefaultSerialWidth, cfg.SerialWidth)
}

func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("prompt: x"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestLoadConfigOverrideFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

func TestNewConfigFromFile_FileError(t *testing.T) {
	t.Parallel()

	_, err := NewConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func createDefaultCfg() *Config {
	return &Config{
		LogLvl:      DefaultLogLvl,
		Prompt:      DefaultPrompt,
		Echo:        DefaultEcho,
		SerialWidth: DefaultSerialWidth,
		SizeWidth:   DefaultSizeWidth,
		ExitOnError: DefaultExitOnError,
	}
}

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	return &ConfigOverride{
		LogLvl:      util.Pointer(TraceVerbose),
		Prompt:      util.Pointer("test>"),
		Echo:        util.Pointer(!DefaultEcho),
		SerialWidth: util.Pointer(DefaultSerialWidth + 1),
		SizeWidth:   util.Pointer(DefaultSizeWidth + 1),
		ExitOnError: util.Pointer(!DefaultExitOnError),
	}
}
