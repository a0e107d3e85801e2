package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gekko3d/galaxy"
	"github.com/gekko3d/galaxy/termview"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	seed := flag.Uint64("seed", 0, "Generation seed, overrides the config (0 keeps it)")
	workers := flag.Int("workers", -1, "Generation workers, overrides the config")
	debug := flag.Bool("debug", false, "Debug logging and the frame profiler overlay")
	terminal := flag.Bool("terminal", false, "Render into the terminal instead of a window")
	preset := flag.String("preset", "", "Start from a saved preset")
	logPath := flag.String("log", "galaxy.log", "Log file used in terminal mode")
	flag.Parse()

	cfg := galaxy.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = galaxy.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}
	if *workers >= 0 {
		cfg.Generation.Workers = *workers
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	var logOut io.Writer
	if *terminal {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
		// The worker keeps the screen responsive while big clouds generate.
		cfg.Generation.Async = true
	}
	level := cfg.Logging.ParsedLevel()
	logger := galaxy.NewDefaultLogger(cfg.Logging.Prefix, level)
	if logOut != nil {
		logger = galaxy.NewDefaultLoggerTo(cfg.Logging.Prefix, level, logOut, logOut)
	}

	presets := galaxy.OpenPresets(cfg.Presets.AppName, logger)
	params := cfg.Galaxy
	if *preset != "" {
		p, err := presets.Load(*preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preset %s: %v\n", *preset, err)
			os.Exit(1)
		}
		params = p
	}

	builder := galaxy.NewAppBuilder().
		UseModule(galaxy.LoggingModule{Prefix: cfg.Logging.Prefix, Level: level, Output: logOut}).
		UseModule(galaxy.TimeModule{}).
		UseModule(galaxy.PresetsModule{Presets: presets}).
		UseModule(galaxy.GalaxyModule{
			Params: params,
			Options: galaxy.RegeneratorOptions{
				Seed:    cfg.Generation.ResolveSeed(),
				Reseed:  cfg.Generation.Reseed,
				Workers: cfg.Generation.Workers,
			},
			Async: cfg.Generation.Async,
		})

	if *terminal {
		builder.UseRenderer(galaxy.RendererTerminal, termview.Module{Camera: cfg.Camera})
	} else {
		builder.
			UseModule(galaxy.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)).
			UseModule(galaxy.InputModule{}).
			UseModule(galaxy.PanelModule{}).
			UseModule(galaxy.OrbitCameraModule{Config: cfg.Camera}).
			UseRenderer(galaxy.RendererPoints, galaxy.PointsRtModule{DebugMode: *debug})
	}

	builder.Build().Run()
}
