package galaxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "galaxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultParameters(), cfg.Galaxy)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Spiral
logging:
  level: debug
generation:
  seed: 1234
  async: true
  workers: 4
galaxy:
  count: 50000
  branches: 3
  inside_color: "#ff0000"
camera:
  position: [0, 10, 0.5]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Spiral", cfg.Window.Title)
	assert.Equal(t, LevelDebug, cfg.Logging.ParsedLevel())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, uint64(1234), cfg.Generation.Seed)
	assert.True(t, cfg.Generation.Async)
	assert.Equal(t, 4, cfg.Generation.Workers)
	assert.Equal(t, 50000, cfg.Galaxy.Count)
	assert.Equal(t, 3, cfg.Galaxy.Branches)
	assert.Equal(t, "#ff0000", cfg.Galaxy.InsideColor.Hex())
	assert.Equal(t, DefaultParameters().OutsideColor, cfg.Galaxy.OutsideColor)
	assert.Equal(t, [3]float32{0, 10, 0.5}, cfg.Camera.Position)
	assert.Equal(t, uint64(1234), cfg.Generation.ResolveSeed())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = LoadConfig(writeConfig(t, "galaxy: [oops"))
	assert.ErrorContains(t, err, "parse config")

	_, err = LoadConfig(writeConfig(t, "galaxy:\n  inside_color: \"#zzzzzz\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "galaxy:\n  branches: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"workers", func(c *Config) { c.Generation.Workers = -1 }},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"near far", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"damping", func(c *Config) { c.Camera.Damping = 1.5 }},
		{"eye at origin", func(c *Config) { c.Camera.Position = [3]float32{} }},
		{"galaxy", func(c *Config) { c.Galaxy.Size = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGenerationConfig_TimeSeed(t *testing.T) {
	assert.NotZero(t, GenerationConfig{}.ResolveSeed())
}
