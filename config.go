package galaxy

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type LoggingConfig struct {
	Prefix string `yaml:"prefix"`
	// Level is one of debug, info, warn, error.
	Level  string `yaml:"level"`
}

func (c LoggingConfig) ParsedLevel() Level {
	level, _ := ParseLevel(c.Level)
	return level
}

type GenerationConfig struct {
	// Seed 0 picks a time based seed at startup.
	Seed    uint64 `yaml:"seed"`
	Async   bool   `yaml:"async"`
	// Workers 0 uses one per CPU.
	Workers int    `yaml:"workers"`
	Reseed  bool   `yaml:"reseed"`
}

type CameraConfig struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Damping  float32    `yaml:"damping"`
}

func (c CameraConfig) Eye() mgl32.Vec3 {
	return mgl32.Vec3(c.Position)
}

type PresetsConfig struct {
	AppName string `yaml:"app_name"`
}

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
	Generation GenerationConfig `yaml:"generation"`
	Galaxy     GalaxyParameters `yaml:"galaxy"`
	Camera     CameraConfig     `yaml:"camera"`
	Presets    PresetsConfig    `yaml:"presets"`
}

func DefaultConfig() Config {
	return Config{
		Window:     WindowConfig{Width: 1280, Height: 720, Title: "Galaxy"},
		Logging:    LoggingConfig{Prefix: "galaxy", Level: "info"},
		Generation: GenerationConfig{Workers: 1},
		Galaxy:     DefaultParameters(),
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{3, 3, 3},
			Damping:  0.05,
		},
		Presets: PresetsConfig{AppName: "galaxy"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Generation.Workers < 0 {
		return fmt.Errorf("generation.workers %d must not be negative", c.Generation.Workers)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov %v must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near %v / far %v: need 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		return fmt.Errorf("camera.damping %v must be in [0, 1]", c.Camera.Damping)
	}
	if c.Camera.Eye().Len() == 0 {
		return fmt.Errorf("camera.position must not be the origin")
	}
	if err := c.Galaxy.Validate(); err != nil {
		return fmt.Errorf("galaxy: %w", err)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time based one for 0.
func (c GenerationConfig) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return NewTimeSeed()
}
